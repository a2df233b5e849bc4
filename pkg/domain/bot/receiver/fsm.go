package receiver

import (
	"sync"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

// ---------- FSM ----------

type State int

const (
	StateIdle State = iota

	// Расписание
	StateAddSlot

	// Блог
	StateAddPost
	StateAddPostPreview
	StateEditPost

	// Файлы
	StateUploadFile
	StateRenameFile

	// Мастер добавления пакета
	StatePackageName
	StatePackageLevel
	StatePackageDescription
	StatePackagePrice
	StatePackagePreview

	// Мастер добавления видео
	StateVideoTitle
	StateVideoDuration
	StateVideoPosition
	StateVideoMedia

	// Редактирование полей пакета
	StateEditPackageName
	StateEditPackageDescription
	StateEditPackagePrice
	StateEditPackagePreview
	StateEditPackagePosition
)

// Session — одна консолидированная запись на чат: состояние мастера,
// черновики и ссылки на цели. StateIdle подразумевает пустой черновик.
type Session struct {
	State State

	// Цели текущего шага
	PostSlug  string
	MediaDir  string
	MediaName string
	PackageID string

	// Черновики
	PackageDraft model.Package
	VideoDraft   model.Video
	VideoPos     int
}

// Reset возвращает сессию в idle и сбрасывает черновик целиком.
func (s *Session) Reset() {
	*s = Session{}
}

// ---------- Session store (in-memory, потокобезопасно) ----------

type SessionStore struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{m: make(map[int64]*Session)}
}

// Get возвращает сессию чата, создавая её лениво при первом обращении.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[chatID]; ok {
		return sess
	}
	se := &Session{}
	s.m[chatID] = se
	return se
}
