package model

import (
	"context"
	"time"
)

// Slots: ключ — дата ISO (ГГГГ-ММ-ДД), значение — отсортированные времена "ЧЧ:ММ".
type Slots map[string][]string

type Booking struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH:MM
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Уровни сложности пакета.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAllLevels    = "AllLevels"
)

// Levels lists the allowed package levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels}

type Video struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	VideoURL string `json:"videoUrl,omitempty"`
}

type Package struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Price       int     `json:"price"` // 0 — бесплатно
	Image       string  `json:"image"` // путь или эмодзи
	Available   bool    `json:"available"`
	Videos      []Video `json:"videos"`
}

// PostMeta — сводка поста для списков: slug + заголовок + дата из шапки.
type PostMeta struct {
	Slug  string
	Title string
	Date  string // YYYY-MM-DD, может быть пустой
}

type MediaFile struct {
	Dir  string
	Name string
	Size int64
}

// Credential — единственная действующая admin-учётка.
// Хранится только HMAC-хеш токена, сырой токен никогда не сохраняется.
type Credential struct {
	TokenHash    string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	IssuerChatID int64
}

// CredentialRepo persists the single active admin credential row.
// Upsert replaces the previous row, which is the revocation mechanism.
type CredentialRepo interface {
	Upsert(ctx context.Context, c Credential) error
	Get(ctx context.Context) (*Credential, error)
}
