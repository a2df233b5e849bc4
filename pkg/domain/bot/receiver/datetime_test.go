package receiver

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func TestParseDateTime(t *testing.T) {
	cases := []struct {
		in       string
		date, tm string
		ok       bool
	}{
		{"2026-02-10 10:00", "2026-02-10", "10:00", true},
		{"10.02.2026 10:00", "2026-02-10", "10:00", true},
		{"10-02-2026 10:00", "2026-02-10", "10:00", true},
		{"10.02 10:00", "2026-02-10", "10:00", true}, // текущий год
		{"  10.02 10:00  ", "2026-02-10", "10:00", true},
		{"10.02", "", "", false},
		{"завтра 10:00", "", "", false},
		{"2026-02-10 10", "", "", false},
	}
	for _, c := range cases {
		date, tm, ok := ParseDateTime(c.in, testNow)
		if ok != c.ok || date != c.date || tm != c.tm {
			t.Fatalf("ParseDateTime(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.in, date, tm, ok, c.date, c.tm, c.ok)
		}
	}
}

// Все три грамматики дают один и тот же канонический вид.
func TestParseDateTimeCanonical(t *testing.T) {
	inputs := []string{"2026-02-10 10:00", "10.02.2026 10:00", "10.02 10:00"}
	for _, in := range inputs {
		date, tm, ok := ParseDateTime(in, testNow)
		if !ok || date != "2026-02-10" || tm != "10:00" {
			t.Fatalf("ParseDateTime(%q) = (%q, %q, %v)", in, date, tm, ok)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	date, start, end, ok := ParseDateRange("10.02 10:00 11:00", testNow)
	if !ok || date != "2026-02-10" || start != "10:00" || end != "11:00" {
		t.Fatalf("ParseDateRange: (%q, %q, %q, %v)", date, start, end, ok)
	}

	if _, _, _, ok := ParseDateRange("10.02 10:00", testNow); ok {
		t.Fatal("range needs an end time")
	}
	if _, _, _, ok := ParseDateRange("10.02 10:00 потом", testNow); ok {
		t.Fatal("bad end time must fail")
	}
}

func TestFormatDateRu(t *testing.T) {
	if got := FormatDateRu("2026-02-10"); got != "10 февраля 2026" {
		t.Fatalf("FormatDateRu: %q", got)
	}
	if got := FormatDateRu("2026-09-01"); got != "1 сентября 2026" {
		t.Fatalf("leading zero must be stripped: %q", got)
	}
	// Нераспознанный вход возвращается как есть.
	if got := FormatDateRu("когда-нибудь"); got != "когда-нибудь" {
		t.Fatalf("passthrough: %q", got)
	}
}
