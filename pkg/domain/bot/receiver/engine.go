// Package receiver — диалоговый движок админ-бота: конечный автомат на чат,
// мастера (слоты, посты, пакеты, файлы), подтверждения разрушающих действий
// и привилегированные команды. Контент-операции идут через pkg/content,
// права и токены — через pkg/auth, деплой — через pkg/deploy.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/auth"
	"github.com/napryag/yoga_admin_bot/pkg/content"
	"github.com/napryag/yoga_admin_bot/pkg/deploy"
	"github.com/rs/zerolog"
)

// Размеры страниц экранов выбора.
const (
	postsPageSize    = 5
	filesPageSize    = 10
	packagesPageSize = 5
	datesPageSize    = 5
)

// Outbox отправляет исходящие сообщения; реализуется sender.Processor.
type Outbox interface {
	Send(msg tgbotapi.Chattable) (tgbotapi.Message, error)
	AnswerCallback(callbackID, text string)
}

// FileFetcher качает файл с серверов Telegram по file_id.
type FileFetcher interface {
	Fetch(fileID string) ([]byte, error)
}

type Engine struct {
	log      zerolog.Logger
	out      Outbox
	files    FileFetcher
	store    *content.Store
	auth     *auth.Authority
	deploy   *deploy.Runner
	sessions *SessionStore
	now      func() time.Time
}

func NewEngine(
	log zerolog.Logger,
	out Outbox,
	files FileFetcher,
	store *content.Store,
	authority *auth.Authority,
	runner *deploy.Runner,
) *Engine {
	return &Engine{
		log:      log,
		out:      out,
		files:    files,
		store:    store,
		auth:     authority,
		deploy:   runner,
		sessions: NewSessionStore(),
		now:      time.Now,
	}
}

// HandleUpdate — единая точка входа для апдейтов лонг-поллинга.
func (e *Engine) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if m := update.Message; m != nil {
		e.handleMessage(ctx, m)
		return
	}
	if cq := update.CallbackQuery; cq != nil {
		e.handleCallback(ctx, cq)
	}
}

func (e *Engine) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	sess := e.sessions.Get(chatID)

	if m.IsCommand() {
		e.handleCommand(ctx, chatID, sess, m)
		return
	}

	if len(m.Photo) > 0 || m.Video != nil || m.Audio != nil || m.Document != nil {
		e.handleMediaMessage(chatID, sess, m)
		return
	}

	text := strings.TrimSpace(m.Text)
	if e.handleMenuButton(chatID, sess, text) {
		return
	}

	switch sess.State {
	case StateAddSlot:
		e.handleAddSlotText(chatID, sess, text)
	case StateAddPost:
		e.handleAddPostText(chatID, sess, text)
	case StateAddPostPreview:
		e.handleAddPostPreviewText(chatID, sess, text)
	case StateEditPost:
		e.handleEditPostText(chatID, sess, text)
	case StateUploadFile:
		e.send(chatID, "Жду файл: отправьте фото, видео, аудио или документ.")
	case StateRenameFile:
		e.handleRenameText(chatID, sess, text)
	case StatePackageName:
		e.handlePackageNameText(chatID, sess, text)
	case StatePackageLevel:
		e.send(chatID, "Выберите уровень кнопкой под сообщением.")
	case StatePackageDescription:
		e.handlePackageDescriptionText(chatID, sess, text)
	case StatePackagePrice:
		e.handlePackagePriceText(chatID, sess, text)
	case StatePackagePreview:
		e.handlePackagePreviewText(chatID, sess, text)
	case StateVideoTitle:
		e.handleVideoTitleText(chatID, sess, text)
	case StateVideoDuration:
		e.handleVideoDurationText(chatID, sess, text)
	case StateVideoPosition:
		e.handleVideoPositionText(chatID, sess, text)
	case StateVideoMedia:
		e.handleVideoMediaText(chatID, sess, text)
	case StateEditPackageName, StateEditPackageDescription, StateEditPackagePrice,
		StateEditPackagePreview, StateEditPackagePosition:
		e.handleEditPackageText(chatID, sess, text)
	default:
		e.sendKb(chatID,
			"Я вас понял, но не знаю, что с этим сделать 🙂\n\n"+
				"Используйте команды /start, /slots или кнопки под клавиатурой.",
			MainMenu())
	}
}

func (e *Engine) handleCommand(ctx context.Context, chatID int64, sess *Session, m *tgbotapi.Message) {
	switch m.Command() {
	case "start":
		sess.Reset()
		e.sendKb(chatID,
			"🧘 Админ-бот сайта студии.\n\n"+
				"Разделы:\n"+
				"• «Управление расписанием» — слоты, записи, отмены\n"+
				"• «Управление блогом» — посты и файлы\n"+
				"• «Управление пакетами» — пакеты видеоуроков\n\n"+
				"Команды: /slots — слоты, /token — токен администратора, /deploy — публикация сайта.",
			MainMenu())
	case "slots":
		e.showSlotsCommand(chatID, strings.TrimSpace(m.CommandArguments()))
	case "token":
		e.handleTokenCommand(ctx, chatID)
	case "deploy":
		e.handleDeployCommand(chatID)
	default:
		e.send(chatID, "Неизвестная команда. Доступны: /start, /slots, /token, /deploy.")
	}
}

// handleMenuButton обрабатывает кнопки reply-клавиатур. Нажатие кнопки меню
// имеет приоритет над текущим мастером и сбрасывает его.
func (e *Engine) handleMenuButton(chatID int64, sess *Session, text string) bool {
	switch text {
	case btnSchedule:
		sess.Reset()
		e.sendKb(chatID, "Раздел «Управление расписанием». Выберите действие:", ScheduleMenu())
	case btnBlog:
		sess.Reset()
		e.sendKb(chatID,
			"Раздел «Управление блогом».\n\n"+
				"• «Добавить пост» — новый markdown-файл в content/posts\n"+
				"• «Удалить пост» — удалить выбранный пост\n"+
				"• «Редактировать пост» — изменить содержимое файла\n"+
				"• «Управление файлами» — файлы в public.",
			BlogMenu())
	case btnPackages:
		sess.Reset()
		e.sendKb(chatID,
			"Раздел «Управление пакетами».\n\n"+
				"Пакет — это набор видеоуроков с порядком показа. "+
				"Здесь можно добавлять пакеты, менять их поля и управлять видео.",
			PackagesMenu())
	case btnMainBack:
		sess.Reset()
		e.sendKb(chatID, "Главное меню.", MainMenu())
	case btnCancel:
		sess.Reset()
		e.sendKb(chatID, "Действие отменено.", MainMenu())

	case btnShowSlots:
		sess.Reset()
		e.showAllSlots(chatID)
	case btnAddSlot:
		e.startAddSlot(chatID, sess)
	case btnDelSlot:
		e.startDeleteSlot(chatID, sess, 0)
	case btnCancelBooking:
		e.startCancelBooking(chatID, sess)

	case btnAddPost:
		e.startAddPost(chatID, sess)
	case btnDelPost:
		sess.Reset()
		e.sendPostsPage(chatID, 0, true)
	case btnEditPost:
		sess.Reset()
		e.sendPostsPage(chatID, 0, false)
	case btnFiles:
		sess.Reset()
		e.sendMediaDirs(chatID)

	case btnListPackages:
		sess.Reset()
		e.sendPackagesPage(chatID, 0)
	case btnAddPackage:
		e.startAddPackage(chatID, sess)

	default:
		return false
	}
	return true
}

func (e *Engine) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		e.out.AnswerCallback(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	sess := e.sessions.Get(chatID)

	action, err := DecodeAction(cq.Data)
	if err != nil {
		e.log.Warn().Err(err).Str("data", cq.Data).Msg("bad callback payload")
		e.out.AnswerCallback(cq.ID, "Некорректные данные кнопки.")
		return
	}
	e.out.AnswerCallback(cq.ID, "")

	switch action.Kind {
	// Слоты
	case ActDelSlotDatePage:
		e.startDeleteSlot(chatID, sess, action.Page)
	case ActDelSlotDate:
		e.sendSlotTimes(chatID, action.Date)
	case ActDelSlotTime:
		e.maybeDeleteSlot(chatID, action.Date, action.Time)
	case ActConfirmDelSlot:
		e.confirmDeleteSlot(chatID, sess, action.Date, action.Time)
	case ActCancelDelSlot:
		e.sendKb(chatID, "Удаление слота отменено.", ScheduleMenu())

	// Записи
	case ActCancelBookingDate:
		e.sendBookingTimes(chatID, action.Date)
	case ActCancelBookingTime:
		e.askCancelBooking(chatID, action.Date, action.Time)
	case ActConfirmCancelBooking:
		e.confirmCancelBooking(chatID, sess, action.Date, action.Time)
	case ActDismissCancelBooking:
		e.sendKb(chatID, "Отмена записей прервана.", ScheduleMenu())

	// Посты
	case ActDelPostPage:
		e.sendPostsPage(chatID, action.Page, true)
	case ActEditPostPage:
		e.sendPostsPage(chatID, action.Page, false)
	case ActDelPostSelect:
		e.askDeletePost(chatID, action.Slug)
	case ActConfirmDelPost:
		e.confirmDeletePost(chatID, sess, action.Slug)
	case ActCancelDelPost:
		e.sendKb(chatID, "Удаление поста отменено.", BlogMenu())
	case ActEditPostSelect:
		e.startEditPost(chatID, sess, action.Slug)

	// Файлы
	case ActMediaDir:
		e.sendMediaFiles(chatID, action.Dir, 0)
	case ActMediaPage:
		e.sendMediaFiles(chatID, action.Dir, action.Page)
	case ActMediaFile:
		e.sendMediaFile(chatID, action.Dir, action.Name)
	case ActMediaUpload:
		e.startUploadMedia(chatID, sess, action.Dir)
	case ActMediaKeepName:
		e.sendKb(chatID,
			fmt.Sprintf("Файл «%s» оставлен в папке «%s» без изменений.", action.Name, action.Dir),
			BlogMenu())
	case ActMediaRename:
		e.startRenameMedia(chatID, sess, action.Dir, action.Name)
	case ActMediaDelete:
		e.deleteMediaFile(chatID, action.Dir, action.Name)
	case ActMediaBackDirs:
		e.sendMediaDirs(chatID)
	case ActMediaCancel:
		e.sendKb(chatID, "Управление файлами закрыто.", BlogMenu())

	// Пакеты
	case ActPkgPage:
		e.sendPackagesPage(chatID, action.Page)
	case ActPkgOpen:
		e.sendPackageCard(chatID, action.PackageID)
	case ActPkgLevel:
		e.handlePackageLevelChoice(chatID, sess, action.Level)
	case ActPkgEditField:
		e.startEditPackageField(chatID, sess, action.PackageID, action.Field)
	case ActPkgSetLevel:
		e.setPackageLevel(chatID, sess, action.PackageID, action.Level)
	case ActPkgToggle:
		e.togglePackageAvailable(chatID, sess, action.PackageID)
	case ActPkgDelete:
		e.askDeletePackage(chatID, action.PackageID)
	case ActConfirmPkgDelete:
		e.confirmDeletePackage(chatID, sess, action.PackageID)
	case ActPkgCancel:
		e.sendKb(chatID, "Действие с пакетом отменено.", PackagesMenu())
	case ActVideoAdd:
		e.startAddVideo(chatID, sess, action.PackageID)
	case ActVideoUp:
		e.moveVideo(chatID, sess, action.PackageID, action.Index, -1)
	case ActVideoDown:
		e.moveVideo(chatID, sess, action.PackageID, action.Index, +1)
	case ActVideoDel:
		e.removeVideo(chatID, sess, action.PackageID, action.Index)
	}
}

// ---------- Привилегированные команды ----------

func (e *Engine) handleTokenCommand(ctx context.Context, chatID int64) {
	if !e.auth.IsAdmin(chatID) {
		e.send(chatID, "Недостаточно прав.")
		return
	}

	token, expiresAt, err := e.auth.Issue(ctx, chatID)
	if err != nil {
		e.log.Error().Err(err).Int64("chat", chatID).Msg("token issue failed")
		e.send(chatID, "Не удалось выдать токен: "+err.Error())
		return
	}

	e.sendMd(chatID, fmt.Sprintf(
		"🔑 Новый токен администратора:\n`%s`\n\n"+
			"Действует до %s. Предыдущий токен отозван.",
		token, expiresAt.Format("2006-01-02 15:04"),
	))
}

func (e *Engine) handleDeployCommand(chatID int64) {
	if !e.auth.IsAdmin(chatID) {
		e.send(chatID, "Недостаточно прав.")
		return
	}

	err := e.deploy.Start(func(text string) {
		e.send(chatID, text)
	})
	if errors.Is(err, deploy.ErrBusy) {
		e.send(chatID, "Деплой уже выполняется, дождитесь его завершения.")
		return
	}
	if err != nil {
		e.send(chatID, "Не удалось запустить деплой: "+err.Error())
	}
}

// ---------- Отправка ----------

func (e *Engine) send(chatID int64, text string) {
	if _, err := e.out.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		e.log.Error().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}

func (e *Engine) sendMd(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := e.out.Send(msg); err != nil {
		e.log.Error().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}

func (e *Engine) sendKb(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := e.out.Send(msg); err != nil {
		e.log.Error().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}

func (e *Engine) sendMdKb(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := e.out.Send(msg); err != nil {
		e.log.Error().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}

// fail: локальная ошибка записи/чтения — сообщаем причину и возвращаем
// сессию в idle, чтобы мастер не завис на полушаге.
func (e *Engine) fail(chatID int64, sess *Session, what string, err error) {
	e.log.Error().Err(err).Int64("chat", chatID).Msg(what)
	sess.Reset()
	e.sendKb(chatID, fmt.Sprintf("Не удалось выполнить операцию: %v", err), MainMenu())
}
