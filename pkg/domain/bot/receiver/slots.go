package receiver

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/paginate"
	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

var reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ---------- Показ слотов ----------

func (e *Engine) showSlotsCommand(chatID int64, arg string) {
	if arg == "" {
		e.showAllSlots(chatID)
		return
	}
	if !reISODate.MatchString(arg) {
		e.send(chatID, "Формат даты: ГГГГ-ММ-ДД (например 2026-02-10)")
		return
	}

	slots, err := e.store.ReadSlots()
	if err != nil {
		e.send(chatID, "Не удалось прочитать слоты: "+err.Error())
		return
	}
	times := slots[arg]
	if len(times) == 0 {
		e.send(chatID, fmt.Sprintf("На %s слотов нет.", FormatDateRu(arg)))
		return
	}

	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.send(chatID, "Не удалось прочитать записи: "+err.Error())
		return
	}
	free, taken := splitByBooked(times, bookings, arg)

	lines := []string{"📅 " + FormatDateRu(arg)}
	if len(free) > 0 {
		lines = append(lines, "Свободно: "+strings.Join(free, ", "))
	}
	if len(taken) > 0 {
		lines = append(lines, "Занято: "+strings.Join(taken, ", "))
	}
	e.send(chatID, strings.Join(lines, "\n"))
}

func (e *Engine) showAllSlots(chatID int64) {
	slots, err := e.store.ReadSlots()
	if err != nil {
		e.send(chatID, "Не удалось прочитать слоты: "+err.Error())
		return
	}
	if len(slots) == 0 {
		e.sendKb(chatID, "Слотов пока нет.", ScheduleMenu())
		return
	}
	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.send(chatID, "Не удалось прочитать записи: "+err.Error())
		return
	}

	dates := make([]string, 0, len(slots))
	for d := range slots {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	lines := []string{"📋 Слоты по датам:", ""}
	for _, d := range dates {
		free, taken := splitByBooked(slots[d], bookings, d)
		lines = append(lines, "📅 "+FormatDateRu(d))
		if len(free) > 0 {
			lines = append(lines, "Свободно: "+strings.Join(free, ", "))
		}
		if len(taken) > 0 {
			lines = append(lines, "Занято: "+strings.Join(taken, ", "))
		}
		lines = append(lines, "")
	}
	e.sendKb(chatID, strings.Join(lines, "\n"), ScheduleMenu())
}

func splitByBooked(times []string, bookings []model.Booking, date string) (free, taken []string) {
	booked := map[string]bool{}
	for _, b := range bookings {
		if b.Date == date {
			booked[b.Time] = true
		}
	}
	for _, t := range times {
		if booked[t] {
			taken = append(taken, t)
		} else {
			free = append(free, t)
		}
	}
	return free, taken
}

// ---------- Добавление слота ----------

func (e *Engine) startAddSlot(chatID int64, sess *Session) {
	sess.Reset()
	sess.State = StateAddSlot
	e.sendMd(chatID,
		"Отправьте дату и *начало и конец* слота в формате:\n"+
			"`ДД.ММ ЧЧ:ММ ЧЧ:ММ` или `ДД.ММ.ГГГГ ЧЧ:ММ ЧЧ:ММ`\n\n"+
			"Например: `10.02 10:00 11:00` или `10.02.2026 10:00 11:00`.")
}

func (e *Engine) handleAddSlotText(chatID int64, sess *Session, text string) {
	date, start, end, ok := ParseDateRange(text, e.now())
	if !ok {
		// Формат не распознан — переспрашиваем, не выходя из шага.
		e.sendMd(chatID,
			"Формат для добавления слота (дата + начало и конец):\n"+
				"`ДД.ММ ЧЧ:ММ ЧЧ:ММ` или `ДД.ММ.ГГГГ ЧЧ:ММ ЧЧ:ММ`\n\n"+
				"Например: `10.02 10:00 11:00` или `10.02.2026 10:00 11:00`")
		return
	}

	slots, err := e.store.ReadSlots()
	if err != nil {
		e.fail(chatID, sess, "read slots failed", err)
		return
	}

	if containsTime(slots[date], start) {
		e.send(chatID, fmt.Sprintf("Слот %s в %s уже есть в списке.", FormatDateRu(date), start))
		return
	}

	// Храним только время начала — сайт показывает именно его. Список
	// времени пересобирается без дублей: файл могли править руками.
	slots[date] = dedupeSorted(append(slots[date], start))
	if err := e.store.WriteSlots(slots); err != nil {
		e.fail(chatID, sess, "write slots failed", err)
		return
	}

	sess.Reset()
	e.sendKb(chatID, fmt.Sprintf(
		"✅ Слот добавлен: %s с %s до %s\n(в расписании сайта используется время начала: %s)",
		FormatDateRu(date), start, end, start,
	), ScheduleMenu())
}

// ---------- Удаление слота ----------

func (e *Engine) startDeleteSlot(chatID int64, sess *Session, pageNum int) {
	sess.Reset()

	dates, err := e.store.SlotDates()
	if err != nil {
		e.fail(chatID, sess, "read slots failed", err)
		return
	}
	today := e.now().Format("2006-01-02")
	future := dates[:0]
	for _, d := range dates {
		if d >= today {
			future = append(future, d)
		}
	}

	page, ok := paginate.Slice(future, datesPageSize, pageNum)
	if !ok {
		e.sendKb(chatID, "Нет будущих дат со слотами для удаления.", ScheduleMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range page.Items {
		rows = append(rows, row(btn(FormatDateRu(d), cb("del_date", d))))
	}
	if nav := navRow("del_datepage", page.HasPrev, page.HasNext, page.Number); nav != nil {
		rows = append(rows, nav)
	}
	e.sendKb(chatID, "Выберите дату, для которой нужно удалить слот:",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (e *Engine) sendSlotTimes(chatID int64, date string) {
	slots, err := e.store.ReadSlots()
	if err != nil {
		e.send(chatID, "Не удалось прочитать слоты: "+err.Error())
		return
	}
	times := slots[date]
	if len(times) == 0 {
		e.sendKb(chatID, "Для выбранной даты слотов уже нет.", ScheduleMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range times {
		rows = append(rows, row(btn(t, cb("del_time", date, t))))
	}
	e.sendKb(chatID, fmt.Sprintf("Выберите слот для удаления (%s):", FormatDateRu(date)),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// maybeDeleteSlot: без затронутых записей слот удаляется сразу, иначе
// сначала показываем клиентов и просим подтверждение.
func (e *Engine) maybeDeleteSlot(chatID int64, date, tm string) {
	slots, err := e.store.ReadSlots()
	if err != nil {
		e.send(chatID, "Не удалось прочитать слоты: "+err.Error())
		return
	}
	if !containsTime(slots[date], tm) {
		e.sendKb(chatID, fmt.Sprintf("Слота %s в %s не найдено.", FormatDateRu(date), tm), ScheduleMenu())
		return
	}

	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.send(chatID, "Не удалось прочитать записи: "+err.Error())
		return
	}
	affected := matchBookings(bookings, date, tm)

	if len(affected) > 0 {
		lines := []string{
			fmt.Sprintf("⚠ На этот слот уже есть записи: %s в %s.", FormatDateRu(date), tm),
			"",
			"Клиенты:",
		}
		lines = append(lines, clientLines(affected)...)
		lines = append(lines, "", "Вы действительно хотите удалить этот слот?")

		e.sendKb(chatID, strings.Join(lines, "\n"),
			confirmKeyboard("✅ Да, удалить слот", cb("confirm_del", date, tm), cb("cancel_del")))
		return
	}

	if err := e.removeSlot(slots, date, tm); err != nil {
		e.send(chatID, "Не удалось удалить слот: "+err.Error())
		return
	}
	e.sendKb(chatID, fmt.Sprintf("🗑 Слот удалён: %s в %s", FormatDateRu(date), tm), ScheduleMenu())
}

// confirmDeleteSlot выполняет оба эффекта: удаляет слот и отменяет записи
// на него. Оператору они показываются как два отдельных результата.
func (e *Engine) confirmDeleteSlot(chatID int64, sess *Session, date, tm string) {
	slots, err := e.store.ReadSlots()
	if err != nil {
		e.fail(chatID, sess, "read slots failed", err)
		return
	}
	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.fail(chatID, sess, "read bookings failed", err)
		return
	}

	cancelled := matchBookings(bookings, date, tm)
	remaining := rejectBookings(bookings, date, tm)

	if containsTime(slots[date], tm) {
		if err := e.removeSlot(slots, date, tm); err != nil {
			e.fail(chatID, sess, "write slots failed", err)
			return
		}
	}
	if err := e.store.WriteBookings(remaining); err != nil {
		e.fail(chatID, sess, "write bookings failed", err)
		return
	}

	if len(cancelled) > 0 {
		lines := []string{
			fmt.Sprintf("❌ Слот удалён и записи отменены: %s в %s.", FormatDateRu(date), tm),
			"",
			"Клиенты, которых нужно уведомить:",
		}
		lines = append(lines, clientLines(cancelled)...)
		e.sendKb(chatID, strings.Join(lines, "\n"), ScheduleMenu())
	} else {
		e.sendKb(chatID, fmt.Sprintf("🗑 Слот удалён: %s в %s", FormatDateRu(date), tm), ScheduleMenu())
	}
}

func (e *Engine) removeSlot(slots model.Slots, date, tm string) error {
	var rest []string
	for _, t := range slots[date] {
		if t != tm {
			rest = append(rest, t)
		}
	}
	if len(rest) > 0 {
		slots[date] = rest
	} else {
		delete(slots, date)
	}
	return e.store.WriteSlots(slots)
}

// ---------- Отмена записи ----------

func (e *Engine) startCancelBooking(chatID int64, sess *Session) {
	sess.Reset()

	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.fail(chatID, sess, "read bookings failed", err)
		return
	}
	if len(bookings) == 0 {
		e.sendKb(chatID, "Пока нет ни одной записи — отменять нечего 🙂", ScheduleMenu())
		return
	}

	today := e.now().Format("2006-01-02")
	seen := map[string]bool{}
	var dates []string
	for _, b := range bookings {
		if b.Date >= today && !seen[b.Date] {
			seen[b.Date] = true
			dates = append(dates, b.Date)
		}
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		e.sendKb(chatID, "Нет будущих дат с записями для отмены.", ScheduleMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range dates {
		rows = append(rows, row(btn(FormatDateRu(d), cb("cancel_date", d))))
	}
	e.sendKb(chatID, "Выберите дату, для которой хотите отменить запись:",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (e *Engine) sendBookingTimes(chatID int64, date string) {
	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.send(chatID, "Не удалось прочитать записи: "+err.Error())
		return
	}

	seen := map[string]bool{}
	var times []string
	for _, b := range bookings {
		if b.Date == date && !seen[b.Time] {
			seen[b.Time] = true
			times = append(times, b.Time)
		}
	}
	sort.Strings(times)

	if len(times) == 0 {
		e.sendKb(chatID, "На выбранную дату записей уже нет.", ScheduleMenu())
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range times {
		rows = append(rows, row(btn(t, cb("cancel_time", date, t))))
	}
	e.sendKb(chatID, fmt.Sprintf("Выберите время для отмены записи (%s):", FormatDateRu(date)),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (e *Engine) askCancelBooking(chatID int64, date, tm string) {
	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.send(chatID, "Не удалось прочитать записи: "+err.Error())
		return
	}
	affected := matchBookings(bookings, date, tm)
	if len(affected) == 0 {
		e.sendKb(chatID, "Записей на этот слот уже нет.", ScheduleMenu())
		return
	}

	lines := []string{fmt.Sprintf("⚠ Будут отменены записи на %s в %s:", FormatDateRu(date), tm), ""}
	lines = append(lines, clientLines(affected)...)
	lines = append(lines, "", "Вы действительно хотите отменить эти записи?")

	e.sendKb(chatID, strings.Join(lines, "\n"),
		confirmKeyboard("✅ Да, отменить записи",
			cb("confirm_cancel_booking", date, tm), cb("cancel_cancel_booking")))
}

func (e *Engine) confirmCancelBooking(chatID int64, sess *Session, date, tm string) {
	bookings, err := e.store.ReadBookings()
	if err != nil {
		e.fail(chatID, sess, "read bookings failed", err)
		return
	}

	cancelled := matchBookings(bookings, date, tm)
	if len(cancelled) == 0 {
		e.sendKb(chatID, "Записи уже были отменены ранее.", ScheduleMenu())
		return
	}

	if err := e.store.WriteBookings(rejectBookings(bookings, date, tm)); err != nil {
		e.fail(chatID, sess, "write bookings failed", err)
		return
	}

	lines := []string{
		fmt.Sprintf("❌ Отменены записи на %s в %s.", FormatDateRu(date), tm),
		"",
		"Клиенты, которых нужно уведомить:",
	}
	lines = append(lines, clientLines(cancelled)...)
	e.sendKb(chatID, strings.Join(lines, "\n"), ScheduleMenu())
}

// ---------- Общие помощники ----------

// dedupeSorted возвращает времена без дублей по возрастанию.
func dedupeSorted(times []string) []string {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func containsTime(times []string, tm string) bool {
	for _, t := range times {
		if t == tm {
			return true
		}
	}
	return false
}

func matchBookings(bookings []model.Booking, date, tm string) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.Date == date && b.Time == tm {
			out = append(out, b)
		}
	}
	return out
}

func rejectBookings(bookings []model.Booking, date, tm string) []model.Booking {
	out := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !(b.Date == date && b.Time == tm) {
			out = append(out, b)
		}
	}
	return out
}

func clientLines(bookings []model.Booking) []string {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		name := b.Name
		if name == "" {
			name = "Без имени"
		}
		phone := b.Phone
		if phone == "" {
			phone = "без телефона"
		}
		lines = append(lines, fmt.Sprintf("• %s, телефон: %s", name, phone))
	}
	return lines
}
