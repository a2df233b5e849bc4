// Package deploy — фоновый конвейер публикации сайта: проверка изменений
// контента, commit+push, сборка и перезапуск процесса. Выполняется вне
// пути обработки сообщений и защищён single-flight: второй запуск во время
// работающего отклоняется.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrBusy: деплой уже идёт, повторный запуск отклоняется.
var ErrBusy = errors.New("deploy is already running")

// Хвост вывода шага, который показываем оператору. Начало длинного лога
// почти всегда бесполезно — ошибка в конце.
const outputTail = 1500

type Runner struct {
	log          zerolog.Logger
	siteDir      string
	contentPaths []string
	buildCmd     []string
	restartCmd   []string
	stepTimeout  time.Duration

	busy atomic.Bool
}

func New(log zerolog.Logger, siteDir string, contentPaths, buildCmd, restartCmd []string, stepTimeout time.Duration) *Runner {
	return &Runner{
		log:          log,
		siteDir:      siteDir,
		contentPaths: contentPaths,
		buildCmd:     buildCmd,
		restartCmd:   restartCmd,
		stepTimeout:  stepTimeout,
	}
}

// Running reports whether a deploy is in flight.
func (r *Runner) Running() bool { return r.busy.Load() }

// Start запускает конвейер в фоне. report вызывается после каждой стадии
// и с финальным результатом; вызывающий не блокируется.
func (r *Runner) Start(report func(text string)) error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	jobID := uuid.NewString()[:8]
	go func() {
		defer r.busy.Store(false)
		r.run(jobID, report)
	}()
	return nil
}

func (r *Runner) run(jobID string, report func(string)) {
	log := r.log.With().Str("job", jobID).Logger()
	log.Info().Msg("deploy started")
	report(fmt.Sprintf("🚀 Деплой %s запущен.", jobID))

	statusArgs := append([]string{"status", "--porcelain", "--"}, r.contentPaths...)
	out, err := r.step(report, "git status", "git", statusArgs...)
	if err != nil {
		return
	}

	if strings.TrimSpace(out) == "" {
		report("Изменений в контенте нет, коммит пропущен.")
	} else {
		addArgs := append([]string{"add", "--"}, r.contentPaths...)
		if _, err := r.step(report, "git add", "git", addArgs...); err != nil {
			return
		}
		msg := fmt.Sprintf("content update %s (%s)", time.Now().Format("2006-01-02 15:04"), jobID)
		if _, err := r.step(report, "git commit", "git", "commit", "-m", msg); err != nil {
			return
		}
		if _, err := r.step(report, "git push", "git", "push"); err != nil {
			return
		}
	}

	if _, err := r.step(report, "сборка сайта", r.buildCmd[0], r.buildCmd[1:]...); err != nil {
		return
	}
	if _, err := r.step(report, "перезапуск сайта", r.restartCmd[0], r.restartCmd[1:]...); err != nil {
		return
	}

	log.Info().Msg("deploy finished")
	report(fmt.Sprintf("✅ Деплой %s завершён успешно.", jobID))
}

// step выполняет одну внешнюю команду с таймаутом. При ошибке сам
// отчитывается оператору и возвращает err, чтобы конвейер остановился.
func (r *Runner) step(report func(string), name, bin string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.stepTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.siteDir
	out, err := cmd.CombinedOutput()
	text := trimTail(string(out))

	if ctx.Err() == context.DeadlineExceeded {
		r.log.Error().Str("step", name).Msg("deploy step timed out")
		report(fmt.Sprintf("⏱ Шаг «%s» прерван по таймауту (%s).\n%s", name, r.stepTimeout, text))
		return "", ctx.Err()
	}
	if err != nil {
		r.log.Error().Err(err).Str("step", name).Msg("deploy step failed")
		report(fmt.Sprintf("❌ Шаг «%s» завершился с ошибкой: %v\n%s", name, err, text))
		return "", err
	}

	r.log.Info().Str("step", name).Msg("deploy step ok")
	report(fmt.Sprintf("✔ Шаг «%s» выполнен.", name))
	return string(out), nil
}

// trimTail ограничивает лог, оставляя хвост.
func trimTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= outputTail {
		return s
	}
	return "…" + s[len(s)-outputTail:]
}
