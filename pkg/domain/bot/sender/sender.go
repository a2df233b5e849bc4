package sender

import (
	"io"
	"math"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
	"github.com/rs/zerolog"
)

// Processor отправляет исходящие сообщения с повторами и качает файлы
// с серверов Telegram.
type Processor struct {
	config ProcessorConfig
	logger zerolog.Logger

	bot *tgbotapi.BotAPI
}

func New(config ProcessorConfig, logger zerolog.Logger, bot *tgbotapi.BotAPI) *Processor {
	return &Processor{
		config: config,
		logger: logger,
		bot:    bot,
	}
}

// Send отправляет любое исходящее сообщение с экспоненциальными повторами.
func (p *Processor) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	var err error
	var sent tgbotapi.Message

	for i := 0; i < p.config.Retries; i++ {
		sent, err = p.bot.Send(msg)
		if err == nil {
			return sent, nil
		}
		p.logger.Warn().Err(err).Int("retry", i+1).Msg("send failed, retrying")

		if i != 0 {
			time.Sleep(time.Duration(math.Pow(2, float64(i))) * time.Second)
		}
	}
	p.logger.Error().Err(err).Msg("send permanently failed")

	return tgbotapi.Message{}, errs.New("failed to send message").Wrap(err)
}

// AnswerCallback гасит «часики» на inline-кнопке.
func (p *Processor) AnswerCallback(callbackID, text string) {
	if _, err := p.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		p.logger.Warn().Err(err).Msg("answer callback failed")
	}
}

// Fetch скачивает файл по file_id через getFile + прямую загрузку.
func (p *Processor) Fetch(fileID string) ([]byte, error) {
	url, err := p.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, errs.New("failed to resolve file url").Wrap(err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, errs.New("failed to download file").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New("unexpected download status").Arg("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.New("failed to read file body").Wrap(err)
	}
	return data, nil
}
