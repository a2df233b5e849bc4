package receiver

import (
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/content"
	"github.com/napryag/yoga_admin_bot/pkg/paginate"
)

// ---------- Просмотр папок и файлов ----------

func (e *Engine) sendMediaDirs(chatID int64) {
	dirs, err := e.store.ListMediaDirs()
	if err != nil {
		e.send(chatID, "Не удалось прочитать папку public: "+err.Error())
		return
	}
	if len(dirs) == 0 {
		e.sendKb(chatID, "В папке public нет папок с фото или видео.", BlogMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range dirs {
		rows = append(rows, row(btn(d, cb("mf_dir", d))))
	}
	rows = append(rows, row(btn(btnCancel, cb("mf_cancel"))))

	e.sendKb(chatID, "Выберите папку с файлами (из public):", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (e *Engine) sendMediaFiles(chatID int64, dir string, pageNum int) {
	files, err := e.store.ListMediaFiles(dir)
	if err != nil {
		e.send(chatID, "Не удалось прочитать папку: "+err.Error())
		return
	}

	page, ok := paginate.Slice(files, filesPageSize, pageNum)
	if !ok {
		e.sendKb(chatID, fmt.Sprintf("В папке «%s» нет файлов.", dir), BlogMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range page.Items {
		rows = append(rows, row(btn(trimLabel(f.Name), cb("mf_file", dir, f.Name, cbInt(page.Number)))))
	}
	if nav := navRow("mf_page", page.HasPrev, page.HasNext, page.Number, dir); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows,
		row(btn("⬆️ Загрузить файл", cb("mf_upload", dir))),
		row(btn("⬅️ К папкам", cb("mf_back_dirs"))),
		row(btn(btnCancel, cb("mf_cancel"))),
	)

	e.sendKb(chatID, fmt.Sprintf("Файлы в папке «%s»:", dir), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// sendMediaFile отправляет файл в чат подходящим типом сообщения и
// предлагает действия над ним.
func (e *Engine) sendMediaFile(chatID int64, dir, name string) {
	path, err := e.store.MediaPath(dir, name)
	if err != nil || !e.store.MediaExists(dir, name) {
		e.sendKb(chatID, "Файл не найден на сервере.", BlogMenu())
		return
	}

	file := tgbotapi.FilePath(path)
	ext := filepath.Ext(name)

	var msg tgbotapi.Chattable
	switch {
	case content.IsImageExt(ext):
		m := tgbotapi.NewPhoto(chatID, file)
		m.Caption = name
		msg = m
	case content.IsVideoExt(ext):
		m := tgbotapi.NewVideo(chatID, file)
		m.Caption = name
		msg = m
	case content.IsAudioExt(ext):
		m := tgbotapi.NewAudio(chatID, file)
		m.Caption = name
		msg = m
	default:
		m := tgbotapi.NewDocument(chatID, file)
		m.Caption = name
		msg = m
	}

	if _, err := e.out.Send(msg); err != nil {
		e.sendKb(chatID, "Не удалось отправить файл: "+err.Error(), BlogMenu())
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🗑 Удалить файл", cb("mf_delfile", dir, name))),
		row(btn("✏️ Переименовать файл", cb("mf_rename", dir, name))),
		row(btn(btnCancel, cb("mf_cancel"))),
	)
	e.sendKb(chatID, fmt.Sprintf("Файл «%s» отправлен. Выберите действие:", name), kb)
}

// ---------- Загрузка ----------

func (e *Engine) startUploadMedia(chatID int64, sess *Session, dir string) {
	sess.Reset()
	sess.State = StateUploadFile
	sess.MediaDir = dir
	e.send(chatID, fmt.Sprintf(
		"Отправьте файл, который хотите загрузить в папку «%s».\n\n"+
			"Можно отправить фото, видео, аудио или документ.", dir))
}

// handleMediaMessage — единая точка входа для входящих медиа; маршрутизирует
// по состоянию мастера, вне мастера медиа игнорируется с подсказкой.
func (e *Engine) handleMediaMessage(chatID int64, sess *Session, m *tgbotapi.Message) {
	switch sess.State {
	case StateAddPostPreview:
		if len(m.Photo) == 0 {
			e.send(chatID, "Для превью нужно отправить именно фото. Попробуйте ещё раз.")
			return
		}
		// Самое большое фото — последнее.
		e.handleAddPostPreviewPhoto(chatID, sess, m.Photo[len(m.Photo)-1].FileID)
	case StateUploadFile:
		e.handleUploadMedia(chatID, sess, m)
	case StatePackagePreview, StateEditPackagePreview:
		if len(m.Photo) == 0 {
			e.send(chatID, "Для превью пакета отправьте фото, короткий эмодзи-текст или «Пропустить».")
			return
		}
		e.handlePackagePreviewPhoto(chatID, sess, m.Photo[len(m.Photo)-1].FileID)
	case StateVideoMedia:
		e.handleVideoMediaUpload(chatID, sess, m)
	default:
		e.send(chatID, "Сейчас я не жду файлов. Используйте кнопки меню.")
	}
}

func (e *Engine) handleUploadMedia(chatID int64, sess *Session, m *tgbotapi.Message) {
	dir := sess.MediaDir
	if dir == "" {
		sess.Reset()
		e.sendKb(chatID, "Не удалось определить папку для загрузки. Начните снова через «Управление файлами».", BlogMenu())
		return
	}

	fileID, name, ok := incomingFile(m, e.now().Format("20060102-150405"))
	if !ok {
		e.send(chatID, "Не удалось определить тип файла. Попробуйте ещё раз.")
		return
	}

	data, err := e.files.Fetch(fileID)
	if err != nil {
		e.send(chatID, "Не удалось скачать файл с серверов Telegram: "+err.Error())
		return
	}

	saved, err := e.store.SaveMedia(dir, name, data)
	if err != nil {
		e.fail(chatID, sess, "save media failed", err)
		return
	}

	sess.Reset()
	kb := tgbotapi.NewInlineKeyboardMarkup(
		row(btn("✅ Оставить стандартное название", cb("mf_keepname", dir, saved))),
		row(btn("✏️ Переименовать файл", cb("mf_rename", dir, saved))),
		row(btn(btnCancel, cb("mf_cancel"))),
	)
	e.sendKb(chatID, fmt.Sprintf(
		"✅ Файл загружен в папку «%s» под именем:\n%s\n\nВыберите действие:", dir, saved), kb)
}

// incomingFile выбирает file_id и имя для входящего медиа. У документов
// сохраняется собственное имя, остальным генерируется timestamp-имя.
func incomingFile(m *tgbotapi.Message, stamp string) (fileID, name string, ok bool) {
	switch {
	case len(m.Photo) > 0:
		return m.Photo[len(m.Photo)-1].FileID, "upload-" + stamp + ".jpg", true
	case m.Video != nil:
		return m.Video.FileID, "upload-" + stamp + ".mp4", true
	case m.Audio != nil:
		return m.Audio.FileID, "upload-" + stamp + ".mp3", true
	case m.Document != nil:
		name := m.Document.FileName
		if name == "" {
			name = "upload-" + stamp
		}
		return m.Document.FileID, name, true
	}
	return "", "", false
}

// ---------- Переименование и удаление ----------

func (e *Engine) startRenameMedia(chatID int64, sess *Session, dir, name string) {
	if !e.store.MediaExists(dir, name) {
		e.sendKb(chatID, "Файл уже удалён или отсутствует.", BlogMenu())
		return
	}

	sess.Reset()
	sess.State = StateRenameFile
	sess.MediaDir = dir
	sess.MediaName = name

	e.send(chatID, fmt.Sprintf(
		"Текущее имя файла: %s.\n"+
			"Отправьте новое имя файла (только имя с расширением, без «/» и «\\»).", name))
}

func (e *Engine) handleRenameText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Имя файла не может быть пустым. Попробуйте ещё раз.")
		return
	}
	if strings.ContainsAny(text, `/\`) {
		e.send(chatID, "В имени файла не должно быть символов «/» или «\\». Укажите только имя, например photo-1.jpg.")
		return
	}
	if sess.MediaDir == "" || sess.MediaName == "" {
		sess.Reset()
		e.sendKb(chatID, "Не удалось определить, какой файл переименовать. Начните снова через «Управление файлами».", BlogMenu())
		return
	}

	newName, err := e.store.RenameMedia(sess.MediaDir, sess.MediaName, text)
	if err != nil {
		// Занятое имя — обычная ситуация: остаёмся в шаге и просим другое.
		e.send(chatID, "Не удалось переименовать файл: "+err.Error())
		return
	}

	oldName := sess.MediaName
	sess.Reset()
	e.sendKb(chatID, fmt.Sprintf("✅ Файл переименован:\n%s → %s", oldName, newName), BlogMenu())
}

// deleteMediaFile перепроверяет существование на момент действия: выбор мог
// быть сделан с устаревшего экрана.
func (e *Engine) deleteMediaFile(chatID int64, dir, name string) {
	if !e.store.MediaExists(dir, name) {
		e.sendKb(chatID, "Файл уже удалён или отсутствует.", BlogMenu())
		return
	}
	if err := e.store.DeleteMedia(dir, name); err != nil {
		e.sendKb(chatID, "Не удалось удалить файл: "+err.Error(), BlogMenu())
		return
	}
	e.sendKb(chatID, fmt.Sprintf("🗑 Файл «%s» удалён из папки «%s».", name, dir), BlogMenu())
}
