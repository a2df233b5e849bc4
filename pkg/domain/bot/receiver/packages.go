package receiver

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/listops"
	"github.com/napryag/yoga_admin_bot/pkg/paginate"
	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

// Папка для превью пакетов и загружаемых видео в public.
const packagesMediaDir = "packages"

// Короткий текстовый токен превью — эмодзи или пара символов.
const previewTokenMaxRunes = 8

func levelLabel(level string) string {
	switch level {
	case model.LevelBeginner:
		return "Начальный"
	case model.LevelIntermediate:
		return "Средний"
	case model.LevelAdvanced:
		return "Продвинутый"
	case model.LevelAllLevels:
		return "Для всех уровней"
	}
	return level
}

func priceLabel(price int) string {
	if price == 0 {
		return "бесплатно"
	}
	return fmt.Sprintf("%d ₽", price)
}

func findPackage(packages []model.Package, id string) int {
	for i := range packages {
		if packages[i].ID == id {
			return i
		}
	}
	return -1
}

// ---------- Список и карточка ----------

func (e *Engine) sendPackagesPage(chatID int64, pageNum int) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}

	page, ok := paginate.Slice(packages, packagesPageSize, pageNum)
	if !ok {
		e.sendKb(chatID, "Пакетов пока нет. Добавьте первый через «Добавить пакет».", PackagesMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range page.Items {
		mark := "✅"
		if !p.Available {
			mark = "🚫"
		}
		label := fmt.Sprintf("%s %s · %s", mark, p.Name, priceLabel(p.Price))
		rows = append(rows, row(btn(trimLabel(label), cb("pkg_open", p.ID))))
	}
	if nav := navRow("pkg_page", page.HasPrev, page.HasNext, page.Number); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, row(btn(btnCancel, cb("pkg_cancel"))))

	e.sendKb(chatID, "Пакеты видеоуроков:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (e *Engine) sendPackageCard(chatID int64, id string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}
	p := packages[i]

	avail := "да"
	if !p.Available {
		avail = "нет"
	}
	lines := []string{
		fmt.Sprintf("📦 %s (id: %s)", p.Name, p.ID),
		"Уровень: " + levelLabel(p.Level),
		"Цена: " + priceLabel(p.Price),
		"Доступен: " + avail,
	}
	if p.Image != "" {
		lines = append(lines, "Превью: "+p.Image)
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	if len(p.Videos) > 0 {
		lines = append(lines, "", "Видео:")
		for n, v := range p.Videos {
			entry := fmt.Sprintf("%d. %s (%s)", n+1, v.Title, v.Duration)
			if v.VideoURL != "" {
				entry += " — " + v.VideoURL
			}
			lines = append(lines, entry)
		}
	} else {
		lines = append(lines, "", "Видео пока нет.")
	}

	toggleLabel := "Скрыть с сайта 🚫"
	if !p.Available {
		toggleLabel = "Показать на сайте ✅"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		row(btn("✏️ Название", cb("pkg_field", p.ID, "name")), btn("✏️ Описание", cb("pkg_field", p.ID, "desc"))),
		row(btn("✏️ Цена", cb("pkg_field", p.ID, "price")), btn("✏️ Уровень", cb("pkg_field", p.ID, "level"))),
		row(btn("✏️ Превью", cb("pkg_field", p.ID, "preview")), btn("↕️ Позиция", cb("pkg_field", p.ID, "pos"))),
		row(btn(toggleLabel, cb("pkg_toggle", p.ID))),
		row(btn("🎬 Добавить видео", cb("vid_add", p.ID))),
	}
	for n := range p.Videos {
		rows = append(rows, row(
			btn(fmt.Sprintf("%d ⬆️", n+1), cb("vid_up", p.ID, cbInt(n))),
			btn("⬇️", cb("vid_down", p.ID, cbInt(n))),
			btn("🗑", cb("vid_del", p.ID, cbInt(n))),
		))
	}
	rows = append(rows,
		row(btn("🗑 Удалить пакет", cb("pkg_del", p.ID))),
		row(btn("⬅️ К списку", cb("pkg_page", "0"))),
	)

	e.sendKb(chatID, strings.Join(lines, "\n"), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// ---------- Мастер добавления пакета ----------

func (e *Engine) startAddPackage(chatID int64, sess *Session) {
	sess.Reset()
	sess.State = StatePackageName
	e.send(chatID, "Название нового пакета?")
}

func (e *Engine) handlePackageNameText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Название не может быть пустым. Отправьте название пакета.")
		return
	}

	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}

	// id выводится из названия и дорабатывается до уникального.
	base := Slugify(text)
	id := UniqueID(base, func(candidate string) bool {
		return findPackage(packages, candidate) >= 0
	})

	sess.PackageDraft = model.Package{ID: id, Name: text, Available: true}
	sess.State = StatePackageLevel

	e.sendKb(chatID, fmt.Sprintf("Идентификатор пакета: %s.\nВыберите уровень:", id),
		levelKeyboard("pkg_level", ""))
}

// handlePackageLevelChoice — шаг уровня в мастере добавления.
func (e *Engine) handlePackageLevelChoice(chatID int64, sess *Session, level string) {
	if sess.State != StatePackageLevel {
		e.send(chatID, "Эта кнопка относится к завершённому шагу.")
		return
	}
	if !validLevel(level) {
		e.send(chatID, "Неизвестный уровень, выберите кнопкой.")
		return
	}

	sess.PackageDraft.Level = level
	sess.State = StatePackageDescription
	e.send(chatID, "Описание пакета?")
}

func (e *Engine) handlePackageDescriptionText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Описание не может быть пустым. Отправьте описание пакета.")
		return
	}
	sess.PackageDraft.Description = text
	sess.State = StatePackagePrice
	e.send(chatID, "Цена пакета в рублях? Целое число, 0 — бесплатный пакет.")
}

func (e *Engine) handlePackagePriceText(chatID int64, sess *Session, text string) {
	price, err := strconv.Atoi(text)
	if err != nil || price < 0 {
		// Черновик не трогаем: оператор просто вводит цену ещё раз.
		e.send(chatID, "Цена должна быть целым неотрицательным числом, например 2900 или 0.")
		return
	}
	sess.PackageDraft.Price = price
	sess.State = StatePackagePreview
	e.send(chatID,
		"Превью пакета: отправьте фото, короткий эмодзи-текст (например 🧘) "+
			"или «Пропустить».")
}

func (e *Engine) handlePackagePreviewText(chatID int64, sess *Session, text string) {
	if strings.EqualFold(text, btnSkip) {
		e.finishAddPackage(chatID, sess)
		return
	}
	if text == "" || len([]rune(text)) > previewTokenMaxRunes {
		e.send(chatID,
			"Для превью подойдёт фото, короткий эмодзи-текст (до 8 символов) или «Пропустить».")
		return
	}
	sess.PackageDraft.Image = text
	e.finishAddPackage(chatID, sess)
}

// handlePackagePreviewPhoto обслуживает и мастер добавления, и
// редактирование превью существующего пакета.
func (e *Engine) handlePackagePreviewPhoto(chatID int64, sess *Session, fileID string) {
	data, err := e.files.Fetch(fileID)
	if err != nil {
		e.send(chatID, "Не удалось скачать фото с серверов Telegram: "+err.Error())
		return
	}

	name := "pkg-" + e.now().Format("20060102-150405") + ".jpg"
	saved, err := e.store.SaveMedia(packagesMediaDir, name, data)
	if err != nil {
		e.fail(chatID, sess, "save package preview failed", err)
		return
	}
	webPath := "/" + packagesMediaDir + "/" + saved

	if sess.State == StateEditPackagePreview {
		e.updatePackage(chatID, sess, func(p *model.Package) string {
			p.Image = webPath
			return "Превью пакета обновлено: " + webPath
		})
		return
	}

	sess.PackageDraft.Image = webPath
	e.finishAddPackage(chatID, sess)
}

func (e *Engine) finishAddPackage(chatID int64, sess *Session) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}

	// Имя могло появиться у другого пакета, пока шёл мастер.
	draft := sess.PackageDraft
	draft.ID = UniqueID(draft.ID, func(candidate string) bool {
		return findPackage(packages, candidate) >= 0
	})

	packages = append(packages, draft)
	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}

	sess.Reset()
	e.sendKb(chatID, fmt.Sprintf("✅ Пакет «%s» добавлен (id: %s).", draft.Name, draft.ID), PackagesMenu())
	e.sendPackageCard(chatID, draft.ID)
}

func validLevel(level string) bool {
	for _, l := range model.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// levelKeyboard строит выбор уровня; для редактирования в payload добавляется id.
func levelKeyboard(tag, id string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range model.Levels {
		data := cb(tag, l)
		if id != "" {
			data = cb(tag, id, l)
		}
		rows = append(rows, row(btn(levelLabel(l), data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ---------- Редактирование пакета ----------

func (e *Engine) startEditPackageField(chatID int64, sess *Session, id, field string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}
	p := packages[i]

	sess.Reset()
	sess.PackageID = id

	switch field {
	case "name":
		sess.State = StateEditPackageName
		e.send(chatID, fmt.Sprintf("Текущее название: %s.\nОтправьте новое название.", p.Name))
	case "desc":
		sess.State = StateEditPackageDescription
		e.send(chatID, "Отправьте новое описание пакета.")
	case "price":
		sess.State = StateEditPackagePrice
		e.send(chatID, fmt.Sprintf("Текущая цена: %s.\nОтправьте новую цену (целое число, 0 — бесплатно).", priceLabel(p.Price)))
	case "preview":
		sess.State = StateEditPackagePreview
		e.send(chatID, "Отправьте новое превью: фото или короткий эмодзи-текст.")
	case "level":
		sess.Reset()
		e.sendKb(chatID, "Выберите новый уровень:", levelKeyboard("pkg_setlevel", id))
	case "pos":
		sess.State = StateEditPackagePosition
		lines := []string{"Текущий порядок пакетов:"}
		for n, pkg := range packages {
			lines = append(lines, fmt.Sprintf("%d. %s", n+1, pkg.Name))
		}
		lines = append(lines, "", fmt.Sprintf("Отправьте новую позицию для «%s» (число от 1 до %d).", p.Name, len(packages)))
		e.send(chatID, strings.Join(lines, "\n"))
	default:
		sess.Reset()
		e.send(chatID, "Неизвестное поле пакета.")
	}
}

// handleEditPackageText — текстовые шаги редактирования полей.
func (e *Engine) handleEditPackageText(chatID int64, sess *Session, text string) {
	switch sess.State {
	case StateEditPackageName:
		if text == "" {
			e.send(chatID, "Название не может быть пустым.")
			return
		}
		e.updatePackage(chatID, sess, func(p *model.Package) string {
			p.Name = text
			return "Название пакета обновлено."
		})
	case StateEditPackageDescription:
		if text == "" {
			e.send(chatID, "Описание не может быть пустым.")
			return
		}
		e.updatePackage(chatID, sess, func(p *model.Package) string {
			p.Description = text
			return "Описание пакета обновлено."
		})
	case StateEditPackagePrice:
		price, err := strconv.Atoi(text)
		if err != nil || price < 0 {
			e.send(chatID, "Цена должна быть целым неотрицательным числом, например 2900 или 0.")
			return
		}
		e.updatePackage(chatID, sess, func(p *model.Package) string {
			p.Price = price
			return "Цена пакета обновлена: " + priceLabel(price)
		})
	case StateEditPackagePreview:
		if strings.EqualFold(text, btnSkip) {
			sess.Reset()
			e.sendKb(chatID, "Превью оставлено без изменений.", PackagesMenu())
			return
		}
		if text == "" || len([]rune(text)) > previewTokenMaxRunes {
			e.send(chatID, "Отправьте фото, короткий эмодзи-текст (до 8 символов) или «Пропустить».")
			return
		}
		e.updatePackage(chatID, sess, func(p *model.Package) string {
			p.Image = text
			return "Превью пакета обновлено."
		})
	case StateEditPackagePosition:
		e.movePackage(chatID, sess, text)
	}
}

// updatePackage перечитывает коллекцию, применяет правку к целевому пакету
// и перезаписывает файл. Исчезнувший пакет — stale-ссылка: сброс в idle.
func (e *Engine) updatePackage(chatID int64, sess *Session, apply func(p *model.Package) string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}
	i := findPackage(packages, sess.PackageID)
	if i < 0 {
		sess.Reset()
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	report := apply(&packages[i])
	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}

	id := sess.PackageID
	sess.Reset()
	e.sendKb(chatID, "✅ "+report, PackagesMenu())
	e.sendPackageCard(chatID, id)
}

// movePackage: pop + insert по 1-базной позиции, позиция кламп-ится в границы.
func (e *Engine) movePackage(chatID int64, sess *Session, text string) {
	pos, err := strconv.Atoi(text)
	if err != nil {
		e.send(chatID, "Позиция должна быть числом, например 2.")
		return
	}

	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}
	i := findPackage(packages, sess.PackageID)
	if i < 0 {
		sess.Reset()
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	rest, moved, ok := listops.RemoveAt(packages, i)
	if !ok {
		sess.Reset()
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}
	packages = listops.InsertAt(rest, moved, pos)

	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}

	sess.Reset()
	lines := []string{"✅ Порядок пакетов обновлён:"}
	for n, p := range packages {
		lines = append(lines, fmt.Sprintf("%d. %s", n+1, p.Name))
	}
	e.sendKb(chatID, strings.Join(lines, "\n"), PackagesMenu())
}

func (e *Engine) setPackageLevel(chatID int64, sess *Session, id, level string) {
	if !validLevel(level) {
		e.send(chatID, "Неизвестный уровень.")
		return
	}
	sess.PackageID = id
	e.updatePackage(chatID, sess, func(p *model.Package) string {
		p.Level = level
		return "Уровень пакета обновлён: " + levelLabel(level)
	})
}

func (e *Engine) togglePackageAvailable(chatID int64, sess *Session, id string) {
	sess.PackageID = id
	e.updatePackage(chatID, sess, func(p *model.Package) string {
		p.Available = !p.Available
		if p.Available {
			return "Пакет снова показывается на сайте."
		}
		return "Пакет скрыт с сайта."
	})
}

// ---------- Удаление пакета ----------

func (e *Engine) askDeletePackage(chatID int64, id string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет уже удалён.", PackagesMenu())
		return
	}
	p := packages[i]

	e.sendKb(chatID, fmt.Sprintf(
		"Вы действительно хотите удалить пакет «%s»?\nВместе с ним будут удалены %d видео.",
		p.Name, len(p.Videos)),
		confirmKeyboard("✅ Да, удалить пакет", cb("confirm_pkg_del", id), cb("pkg_cancel")))
}

func (e *Engine) confirmDeletePackage(chatID int64, sess *Session, id string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет уже удалён.", PackagesMenu())
		return
	}

	rest, removed, ok := listops.RemoveAt(packages, i)
	if !ok {
		e.sendKb(chatID, "Пакет уже удалён.", PackagesMenu())
		return
	}
	if err := e.store.WritePackages(rest); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}

	// Загруженные файлы видео подчищаем после успешной записи коллекции.
	for _, v := range removed.Videos {
		if err := e.store.DeleteVideoFile(v.VideoURL); err != nil {
			e.log.Warn().Err(err).Str("video", v.VideoURL).Msg("video file cleanup failed")
		}
	}

	e.sendKb(chatID, fmt.Sprintf(
		"🗑 Пакет «%s» удалён, видео в нём: %d.", removed.Name, len(removed.Videos)), PackagesMenu())
}

// ---------- Мастер добавления видео ----------

func (e *Engine) startAddVideo(chatID int64, sess *Session, id string) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	if findPackage(packages, id) < 0 {
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	sess.Reset()
	sess.State = StateVideoTitle
	sess.PackageID = id
	e.send(chatID, "Название видео?")
}

func (e *Engine) handleVideoTitleText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Название не может быть пустым. Отправьте название видео.")
		return
	}
	sess.VideoDraft.Title = text
	sess.State = StateVideoDuration
	e.send(chatID, "Длительность видео? Свободный текст, например «25 мин».")
}

func (e *Engine) handleVideoDurationText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Длительность не может быть пустой, например «25 мин».")
		return
	}
	sess.VideoDraft.Duration = text

	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}
	i := findPackage(packages, sess.PackageID)
	if i < 0 {
		sess.Reset()
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	// В пустом пакете позицию не спрашиваем: видео встаёт первым.
	if len(packages[i].Videos) == 0 {
		sess.VideoPos = 1
		sess.State = StateVideoMedia
		e.askVideoMedia(chatID)
		return
	}

	lines := []string{"Текущие видео пакета:"}
	for n, v := range packages[i].Videos {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", n+1, v.Title, v.Duration))
	}
	lines = append(lines, "", fmt.Sprintf("На какую позицию поставить новое видео? Число от 1 до %d.", len(packages[i].Videos)+1))
	sess.State = StateVideoPosition
	e.send(chatID, strings.Join(lines, "\n"))
}

func (e *Engine) handleVideoPositionText(chatID int64, sess *Session, text string) {
	pos, err := strconv.Atoi(text)
	if err != nil || pos < 1 {
		e.send(chatID, "Позиция должна быть числом от 1 и больше.")
		return
	}
	sess.VideoPos = pos
	sess.State = StateVideoMedia
	e.askVideoMedia(chatID)
}

func (e *Engine) askVideoMedia(chatID int64) {
	e.send(chatID,
		"Теперь само видео: загрузите файл (видео или документ) "+
			"или пришлите ссылку/путь текстом.")
}

func (e *Engine) handleVideoMediaText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Пришлите ссылку/путь текстом или загрузите файл.")
		return
	}
	sess.VideoDraft.VideoURL = text
	e.insertVideo(chatID, sess)
}

func (e *Engine) handleVideoMediaUpload(chatID int64, sess *Session, m *tgbotapi.Message) {
	var fileID, name string
	switch {
	case m.Video != nil:
		fileID = m.Video.FileID
		name = "video-" + e.now().Format("20060102-150405") + ".mp4"
	case m.Document != nil:
		fileID = m.Document.FileID
		name = m.Document.FileName
		if name == "" {
			name = "video-" + e.now().Format("20060102-150405")
		}
	default:
		e.send(chatID, "Для видео загрузите файл (видео или документ) или пришлите ссылку текстом.")
		return
	}

	data, err := e.files.Fetch(fileID)
	if err != nil {
		e.send(chatID, "Не удалось скачать файл с серверов Telegram: "+err.Error())
		return
	}

	webPath, err := e.store.SaveVideoUpload(name, data, e.now())
	if err != nil {
		e.fail(chatID, sess, "save video failed", err)
		return
	}

	sess.VideoDraft.VideoURL = webPath
	e.insertVideo(chatID, sess)
}

func (e *Engine) insertVideo(chatID int64, sess *Session) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.fail(chatID, sess, "read packages failed", err)
		return
	}
	i := findPackage(packages, sess.PackageID)
	if i < 0 {
		sess.Reset()
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	packages[i].Videos = listops.InsertAt(packages[i].Videos, sess.VideoDraft, sess.VideoPos)
	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}

	id, title := sess.PackageID, sess.VideoDraft.Title
	sess.Reset()
	e.sendKb(chatID, fmt.Sprintf("✅ Видео «%s» добавлено в пакет.", title), PackagesMenu())
	e.sendPackageCard(chatID, id)
}

// ---------- Перемещение и удаление видео ----------

func (e *Engine) moveVideo(chatID int64, sess *Session, id string, index, delta int) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	var moved bool
	if delta < 0 {
		moved = listops.MoveUp(packages[i].Videos, index)
	} else {
		moved = listops.MoveDown(packages[i].Videos, index)
	}
	if !moved {
		if delta < 0 {
			e.send(chatID, "Видео уже первое в списке.")
		} else {
			e.send(chatID, "Видео уже последнее в списке.")
		}
		return
	}

	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}
	e.sendPackageCard(chatID, id)
}

func (e *Engine) removeVideo(chatID int64, sess *Session, id string, index int) {
	packages, err := e.store.ReadPackages()
	if err != nil {
		e.send(chatID, "Не удалось прочитать пакеты: "+err.Error())
		return
	}
	i := findPackage(packages, id)
	if i < 0 {
		e.sendKb(chatID, "Пакет не найден — возможно, он был удалён.", PackagesMenu())
		return
	}

	rest, removed, ok := listops.RemoveAt(packages[i].Videos, index)
	if !ok {
		e.send(chatID, "Такого видео уже нет — список изменился.")
		return
	}
	packages[i].Videos = rest

	if err := e.store.WritePackages(packages); err != nil {
		e.fail(chatID, sess, "write packages failed", err)
		return
	}
	if err := e.store.DeleteVideoFile(removed.VideoURL); err != nil {
		e.log.Warn().Err(err).Str("video", removed.VideoURL).Msg("video file cleanup failed")
	}

	e.send(chatID, fmt.Sprintf("🗑 Видео «%s» удалено из пакета.", removed.Title))
	e.sendPackageCard(chatID, id)
}
