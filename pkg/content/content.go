// Package content — типизированный доступ к файлам контента сайта:
// слоты и записи (JSON), пакеты с видео (JSON), посты (markdown с шапкой)
// и медиафайлы в public/. Кэша нет: каждая операция перечитывает файл,
// правит в памяти и атомарно переписывает целиком. Это безопасно только
// при одном пишущем процессе.
package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
)

type Paths struct {
	SlotsFile    string
	BookingsFile string
	PackagesFile string
	PostsDir     string
	PublicDir    string
}

type Store struct {
	paths Paths
}

func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// ReadSlots: отсутствующий файл — пустая карта, а не ошибка.
func (s *Store) ReadSlots() (model.Slots, error) {
	slots := model.Slots{}
	if err := readJSON(s.paths.SlotsFile, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Store) WriteSlots(slots model.Slots) error {
	return writeJSON(s.paths.SlotsFile, slots)
}

func (s *Store) ReadBookings() ([]model.Booking, error) {
	bookings := []model.Booking{}
	if err := readJSON(s.paths.BookingsFile, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) WriteBookings(bookings []model.Booking) error {
	return writeJSON(s.paths.BookingsFile, bookings)
}

func (s *Store) ReadPackages() ([]model.Package, error) {
	packages := []model.Package{}
	if err := readJSON(s.paths.PackagesFile, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (s *Store) WritePackages(packages []model.Package) error {
	return writeJSON(s.paths.PackagesFile, packages)
}

// SlotDates возвращает даты со слотами по возрастанию.
func (s *Store) SlotDates() ([]string, error) {
	slots, err := s.ReadSlots()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(slots))
	for d, times := range slots {
		if len(times) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errs.New("failed to read collection").Arg("path", path).Wrap(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.New("failed to decode collection").Arg("path", path).Wrap(err)
	}
	return nil
}

// writeJSON пишет во временный файл и переименовывает: либо коллекция
// записана целиком, либо прежний файл не тронут.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.New("failed to encode collection").Arg("path", path).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.New("failed to create collection dir").Arg("path", path).Wrap(err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.New("failed to write collection").Arg("path", path).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errs.New("failed to replace collection").Arg("path", path).Wrap(err)
	}
	return nil
}
