package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/auth"
	"github.com/napryag/yoga_admin_bot/pkg/config"
	"github.com/napryag/yoga_admin_bot/pkg/content"
	"github.com/napryag/yoga_admin_bot/pkg/deploy"
	"github.com/napryag/yoga_admin_bot/pkg/domain/bot/receiver"
	"github.com/napryag/yoga_admin_bot/pkg/domain/bot/sender"
	"github.com/napryag/yoga_admin_bot/pkg/repository/store"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
	"github.com/rs/zerolog"
)

func main() {

	// 1) Логгер
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// 2) Загружаем конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Err(errs.New("failed to load config").Wrap(err)).Msg("config init")
		return
	}

	// Контекст, завершающийся по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("create bot api")
		return
	}
	bot.Debug = false
	logger.Info().Str("bot", bot.Self.UserName).Msg("authorized")

	// 3) Хранилище учётных данных админки (Postgres)
	repo, err := store.NewRepo(ctx, cfg.PostgreAddr)
	if err != nil {
		logger.Err(errs.New("failed to connect to postgres").Wrap(err)).Msg("repo init")
		return
	}
	defer repo.Close()

	// 4) Контент сайта, права и деплой
	contentStore := content.New(content.Paths{
		SlotsFile:    cfg.SlotsFile(),
		BookingsFile: cfg.BookingsFile(),
		PackagesFile: cfg.PackagesFile(),
		PostsDir:     cfg.PostsDir(),
		PublicDir:    cfg.PublicDir,
	})

	authority := auth.New(cfg.AdminIDs, cfg.TokenSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour, repo)

	runner := deploy.New(logger, cfg.SiteDir,
		[]string{cfg.ContentDir, cfg.PublicDir},
		cfg.BuildCmd, cfg.RestartCmd,
		time.Duration(cfg.DeployTimeoutSec)*time.Second)

	// 5) Отправка и диалоговый движок
	out := sender.New(sender.DefaultConfig(), logger, bot)
	engine := receiver.NewEngine(logger, out, out, contentStore, authority, runner)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 10
	updates := bot.GetUpdatesChan(u)

	// Горутина для корректного завершения
	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down bot")
		// Останавливаем лонг-поллинг -> канал updates закроется, цикл ниже завершится
		bot.StopReceivingUpdates()
	}()

	for update := range updates {
		engine.HandleUpdate(ctx, update)
	}
	logger.Info().Msg("bot stopped")
}
