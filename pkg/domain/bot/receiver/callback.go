package receiver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
)

// Полезная нагрузка inline-кнопки: "тег" или "тег:арг|арг|...".
// Раскодируется ровно один раз на границе, дальше ходит типизированный Action.

type ActionKind int

const (
	ActUnknown ActionKind = iota

	// Слоты
	ActDelSlotDatePage
	ActDelSlotDate
	ActDelSlotTime
	ActConfirmDelSlot
	ActCancelDelSlot

	// Записи
	ActCancelBookingDate
	ActCancelBookingTime
	ActConfirmCancelBooking
	ActDismissCancelBooking

	// Посты
	ActDelPostPage
	ActDelPostSelect
	ActConfirmDelPost
	ActCancelDelPost
	ActEditPostPage
	ActEditPostSelect

	// Файлы
	ActMediaDir
	ActMediaPage
	ActMediaFile
	ActMediaUpload
	ActMediaKeepName
	ActMediaRename
	ActMediaDelete
	ActMediaBackDirs
	ActMediaCancel

	// Пакеты
	ActPkgPage
	ActPkgOpen
	ActPkgLevel
	ActPkgEditField
	ActPkgSetLevel
	ActPkgToggle
	ActPkgDelete
	ActConfirmPkgDelete
	ActPkgCancel
	ActVideoAdd
	ActVideoUp
	ActVideoDown
	ActVideoDel
)

type Action struct {
	Kind ActionKind

	Date string
	Time string
	Slug string
	Dir  string
	Name string
	Page int

	PackageID string
	Level     string
	Field     string
	Index     int
}

// ---------- Кодирование ----------

func cb(tag string, args ...string) string {
	if len(args) == 0 {
		return tag
	}
	return tag + ":" + strings.Join(args, "|")
}

func cbInt(n int) string { return strconv.Itoa(n) }

// ---------- Декодирование ----------

// DecodeAction разбирает payload кнопки. Неизвестный или битый payload —
// ошибка: такие нажатия не должны доходить до обработчиков.
func DecodeAction(data string) (Action, error) {
	tag, payload, _ := strings.Cut(data, ":")
	args := []string{}
	if payload != "" {
		args = strings.Split(payload, "|")
	}

	bad := func() (Action, error) {
		return Action{}, errs.New("malformed callback payload").Arg("data", data)
	}

	switch tag {
	case "del_datepage":
		page, err := needPage(args, 0, 1)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActDelSlotDatePage, Page: page}, nil
	case "del_date":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActDelSlotDate, Date: args[0]}, nil
	case "del_time":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActDelSlotTime, Date: args[0], Time: args[1]}, nil
	case "confirm_del":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActConfirmDelSlot, Date: args[0], Time: args[1]}, nil
	case "cancel_del":
		return Action{Kind: ActCancelDelSlot}, nil

	case "cancel_date":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActCancelBookingDate, Date: args[0]}, nil
	case "cancel_time":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActCancelBookingTime, Date: args[0], Time: args[1]}, nil
	case "confirm_cancel_booking":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActConfirmCancelBooking, Date: args[0], Time: args[1]}, nil
	case "cancel_cancel_booking":
		return Action{Kind: ActDismissCancelBooking}, nil

	case "delpostpage":
		page, err := needPage(args, 0, 1)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActDelPostPage, Page: page}, nil
	case "delpost":
		page, err := needPage(args, 1, 2)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActDelPostSelect, Slug: args[0], Page: page}, nil
	case "confirm_delpost":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActConfirmDelPost, Slug: args[0]}, nil
	case "cancel_delpost":
		return Action{Kind: ActCancelDelPost}, nil
	case "editpostpage":
		page, err := needPage(args, 0, 1)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActEditPostPage, Page: page}, nil
	case "editpost":
		page, err := needPage(args, 1, 2)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActEditPostSelect, Slug: args[0], Page: page}, nil

	case "mf_dir":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActMediaDir, Dir: args[0]}, nil
	case "mf_page":
		page, err := needPage(args, 1, 2)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActMediaPage, Dir: args[0], Page: page}, nil
	case "mf_file":
		page, err := needPage(args, 2, 3)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActMediaFile, Dir: args[0], Name: args[1], Page: page}, nil
	case "mf_upload":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActMediaUpload, Dir: args[0]}, nil
	case "mf_keepname":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActMediaKeepName, Dir: args[0], Name: args[1]}, nil
	case "mf_rename":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActMediaRename, Dir: args[0], Name: args[1]}, nil
	case "mf_delfile":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActMediaDelete, Dir: args[0], Name: args[1]}, nil
	case "mf_back_dirs":
		return Action{Kind: ActMediaBackDirs}, nil
	case "mf_cancel":
		return Action{Kind: ActMediaCancel}, nil

	case "pkg_page":
		page, err := needPage(args, 0, 1)
		if err != nil {
			return bad()
		}
		return Action{Kind: ActPkgPage, Page: page}, nil
	case "pkg_open":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActPkgOpen, PackageID: args[0]}, nil
	case "pkg_level":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActPkgLevel, Level: args[0]}, nil
	case "pkg_field":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActPkgEditField, PackageID: args[0], Field: args[1]}, nil
	case "pkg_setlevel":
		if len(args) != 2 {
			return bad()
		}
		return Action{Kind: ActPkgSetLevel, PackageID: args[0], Level: args[1]}, nil
	case "pkg_toggle":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActPkgToggle, PackageID: args[0]}, nil
	case "pkg_del":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActPkgDelete, PackageID: args[0]}, nil
	case "confirm_pkg_del":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActConfirmPkgDelete, PackageID: args[0]}, nil
	case "pkg_cancel":
		return Action{Kind: ActPkgCancel}, nil
	case "vid_add":
		if len(args) != 1 {
			return bad()
		}
		return Action{Kind: ActVideoAdd, PackageID: args[0]}, nil
	case "vid_up", "vid_down", "vid_del":
		if len(args) != 2 {
			return bad()
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return bad()
		}
		kind := ActVideoUp
		switch tag {
		case "vid_down":
			kind = ActVideoDown
		case "vid_del":
			kind = ActVideoDel
		}
		return Action{Kind: kind, PackageID: args[0], Index: idx}, nil
	}

	return Action{}, errs.New("unknown callback tag").Arg("data", data)
}

// needPage: проверяет число аргументов и парсит номер страницы в позиции idx.
func needPage(args []string, idx, want int) (int, error) {
	if len(args) != want {
		return 0, fmt.Errorf("want %d args", want)
	}
	return strconv.Atoi(args[idx])
}
