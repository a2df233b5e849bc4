package content

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := New(Paths{
		SlotsFile:    filepath.Join(dir, "content", "bookings", "available-slots.json"),
		BookingsFile: filepath.Join(dir, "content", "bookings", "bookings.json"),
		PackagesFile: filepath.Join(dir, "content", "packages", "packages.json"),
		PostsDir:     filepath.Join(dir, "content", "posts"),
		PublicDir:    filepath.Join(dir, "public"),
	})
	return s, dir
}

func TestReadMissingCollections(t *testing.T) {
	s, _ := newTestStore(t)

	slots, err := s.ReadSlots()
	if err != nil {
		t.Fatalf("ReadSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("missing slots file must read as empty, got %v", slots)
	}

	bookings, err := s.ReadBookings()
	if err != nil {
		t.Fatalf("ReadBookings: %v", err)
	}
	if len(bookings) != 0 {
		t.Fatalf("missing bookings file must read as empty, got %v", bookings)
	}

	packages, err := s.ReadPackages()
	if err != nil {
		t.Fatalf("ReadPackages: %v", err)
	}
	if len(packages) != 0 {
		t.Fatalf("missing packages file must read as empty, got %v", packages)
	}
}

func TestSlotsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	slots := model.Slots{
		"2026-02-10": {"10:00", "18:00"},
		"2026-02-11": {"09:00"},
	}
	if err := s.WriteSlots(slots); err != nil {
		t.Fatalf("WriteSlots: %v", err)
	}

	got, err := s.ReadSlots()
	if err != nil {
		t.Fatalf("ReadSlots: %v", err)
	}
	if !reflect.DeepEqual(got, slots) {
		t.Fatalf("round trip: got %v, want %v", got, slots)
	}

	dates, err := s.SlotDates()
	if err != nil {
		t.Fatalf("SlotDates: %v", err)
	}
	if !reflect.DeepEqual(dates, []string{"2026-02-10", "2026-02-11"}) {
		t.Fatalf("SlotDates: %v", dates)
	}
}

func TestSlotDatesSkipsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WriteSlots(model.Slots{"2026-03-01": {}, "2026-03-02": {"10:00"}}); err != nil {
		t.Fatalf("WriteSlots: %v", err)
	}
	dates, err := s.SlotDates()
	if err != nil {
		t.Fatalf("SlotDates: %v", err)
	}
	if !reflect.DeepEqual(dates, []string{"2026-03-02"}) {
		t.Fatalf("dates with no times must be skipped: %v", dates)
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.WriteBookings([]model.Booking{{Date: "2026-02-10", Time: "10:00", Name: "Анна"}}); err != nil {
		t.Fatalf("WriteBookings: %v", err)
	}

	if _, err := os.Stat(s.paths.BookingsFile + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file must be renamed away after a successful write")
	}
	got, err := s.ReadBookings()
	if err != nil {
		t.Fatalf("ReadBookings: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Анна" {
		t.Fatalf("round trip: %v", got)
	}
}

func TestBrokenJSONIsAnError(t *testing.T) {
	s, _ := newTestStore(t)

	if err := os.MkdirAll(filepath.Dir(s.paths.SlotsFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.paths.SlotsFile, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadSlots(); err == nil {
		t.Fatal("broken JSON must surface as an error, not as empty data")
	}
}

func TestPackagesRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	packages := []model.Package{{
		ID:          "morning-yoga",
		Name:        "Утренняя йога",
		Level:       model.LevelBeginner,
		Description: "Мягкий старт дня",
		Price:       2900,
		Available:   true,
		Videos: []model.Video{
			{Title: "Разминка", Duration: "10 мин", VideoURL: "/videos/warmup.mp4"},
			{Title: "Основная часть", Duration: "25 мин"},
		},
	}}
	if err := s.WritePackages(packages); err != nil {
		t.Fatalf("WritePackages: %v", err)
	}

	got, err := s.ReadPackages()
	if err != nil {
		t.Fatalf("ReadPackages: %v", err)
	}
	if !reflect.DeepEqual(got, packages) {
		t.Fatalf("round trip: got %+v, want %+v", got, packages)
	}
}
