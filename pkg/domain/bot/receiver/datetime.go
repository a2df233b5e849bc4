package receiver

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Грамматики даты-времени, удобные для ввода с телефона:
//
//  1. ДД.ММ ЧЧ:ММ        — текущий год
//  2. ДД.ММ.ГГГГ ЧЧ:ММ   — указанный год
//  3. ГГГГ-ММ-ДД ЧЧ:ММ   — ISO
//
// Все три приводятся к каноническому виду (ГГГГ-ММ-ДД, ЧЧ:ММ).

var (
	reISO = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})$`)
	reDMY = regexp.MustCompile(`^(\d{2})[.\-](\d{2})[.\-](\d{4})\s+(\d{2}:\d{2})$`)
	reDM  = regexp.MustCompile(`^(\d{2})[.\-](\d{2})\s+(\d{2}:\d{2})$`)
)

// ParseDateTime разбирает "<дата> <время>" в любой из трёх грамматик.
func ParseDateTime(text string, now time.Time) (date, tm string, ok bool) {
	text = strings.TrimSpace(text)

	if m := reISO.FindStringSubmatch(text); m != nil {
		return m[1], m[2], true
	}
	if m := reDMY.FindStringSubmatch(text); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1], m[4], true
	}
	if m := reDM.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%04d-%s-%s", now.Year(), m[2], m[1]), m[3], true
	}
	return "", "", false
}

// ParseDateRange разбирает "<дата> <начало> <конец>".
func ParseDateRange(text string, now time.Time) (date, start, end string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) < 3 {
		return "", "", "", false
	}

	date, start, ok = ParseDateTime(parts[0]+" "+parts[1], now)
	if !ok {
		return "", "", "", false
	}
	_, end, ok = ParseDateTime(parts[0]+" "+parts[2], now)
	if !ok {
		return "", "", "", false
	}
	return date, start, end, true
}

var ruMonths = map[string]string{
	"01": "января", "02": "февраля", "03": "марта", "04": "апреля",
	"05": "мая", "06": "июня", "07": "июля", "08": "августа",
	"09": "сентября", "10": "октября", "11": "ноября", "12": "декабря",
}

// FormatDateRu: "2026-02-10" -> "10 февраля 2026". Нераспознанная строка
// возвращается как есть.
func FormatDateRu(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	y, m, d := parts[0], parts[1], parts[2]
	month, ok := ruMonths[m]
	if !ok {
		month = m
	}
	return strings.TrimLeft(d, "0") + " " + month + " " + y
}
