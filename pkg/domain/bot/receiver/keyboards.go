package receiver

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Кнопки reply-клавиатур.
const (
	btnSchedule = "Управление расписанием"
	btnBlog     = "Управление блогом"
	btnPackages = "Управление пакетами"
	btnMainBack = "⬅️ В главное меню"

	btnShowSlots     = "Показать слоты"
	btnAddSlot       = "Добавить слот"
	btnDelSlot       = "Удалить слот"
	btnCancelBooking = "Отменить запись"

	btnAddPost  = "Добавить пост"
	btnDelPost  = "Удалить пост"
	btnEditPost = "Редактировать пост"
	btnFiles    = "Управление файлами"

	btnListPackages = "Список пакетов"
	btnAddPackage   = "Добавить пакет"

	btnCancel = "Отмена"
	btnSkip   = "Пропустить"
)

// ---------- Reply-клавиатуры разделов ----------

func MainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSchedule)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBlog)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnPackages)),
	)
}

func ScheduleMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnShowSlots)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddSlot),
			tgbotapi.NewKeyboardButton(btnDelSlot),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelBooking)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainBack)),
	)
}

func BlogMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAddPost)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDelPost)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnEditPost)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnFiles)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainBack)),
	)
}

func PackagesMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnListPackages)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAddPackage)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMainBack)),
	)
}

// ---------- Inline-помощники ----------

func btn(label, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, data)
}

func row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(buttons...)
}

// confirmKeyboard: пара «подтвердить / отмена» для разрушающих действий.
func confirmKeyboard(yesLabel, yesData, cancelData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn(yesLabel, yesData)),
		row(btn(btnCancel, cancelData)),
	)
}

// navRow строит строку навигации по страницам; nil, если страница одна.
func navRow(tag string, hasPrev, hasNext bool, page int, extra ...string) []tgbotapi.InlineKeyboardButton {
	var buttons []tgbotapi.InlineKeyboardButton
	if hasPrev {
		args := append(append([]string{}, extra...), cbInt(page-1))
		buttons = append(buttons, btn("⬅️ Предыдущие", cb(tag, args...)))
	}
	if hasNext {
		args := append(append([]string{}, extra...), cbInt(page+1))
		buttons = append(buttons, btn("Следующие ➡️", cb(tag, args...)))
	}
	if len(buttons) == 0 {
		return nil
	}
	return buttons
}

// trimLabel укорачивает подпись кнопки до телеграмного вида.
func trimLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= 40 {
		return s
	}
	return string(runes[:37]) + "..."
}
