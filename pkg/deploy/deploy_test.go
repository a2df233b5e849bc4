package deploy

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestStartRejectsConcurrentRun(t *testing.T) {
	r := New(zerolog.Nop(), t.TempDir(), []string{"content"}, []string{"true"}, []string{"true"}, time.Second)

	// Имитируем работающий деплой.
	r.busy.Store(true)
	if !r.Running() {
		t.Fatal("Running must report the in-flight deploy")
	}

	err := r.Start(func(string) {})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("second start must be rejected with ErrBusy, got %v", err)
	}

	r.busy.Store(false)
	if r.Running() {
		t.Fatal("Running must clear after the deploy finishes")
	}
}

func TestStartReportsFailureAndReleases(t *testing.T) {
	r := New(zerolog.Nop(), t.TempDir(), []string{"content"}, []string{"true"}, []string{"true"}, 5*time.Second)

	done := make(chan string, 16)
	if err := r.Start(func(text string) { done <- text }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Первый шаг — git status в каталоге без репозитория — падает,
	// конвейер останавливается и отчитывается об ошибке.
	deadline := time.After(10 * time.Second)
	var sawFailure bool
	for !sawFailure {
		select {
		case text := <-done:
			if strings.Contains(text, "❌") {
				sawFailure = true
			}
		case <-deadline:
			t.Fatal("no failure report before deadline")
		}
	}

	// busy снимается после завершения горутины.
	for i := 0; i < 100 && r.Running(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if r.Running() {
		t.Fatal("runner must release the busy flag")
	}
}

func TestTrimTail(t *testing.T) {
	if got := trimTail("  short  "); got != "short" {
		t.Fatalf("short output: %q", got)
	}

	long := strings.Repeat("a", outputTail) + "TAIL"
	got := trimTail(long)
	if len(got) != outputTail+len("…") {
		t.Fatalf("trimmed length: %d", len(got))
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "TAIL") {
		t.Fatalf("must keep the tail: %q", got)
	}
}
