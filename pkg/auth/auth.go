// Package auth — проверка прав администратора и выдача одноактивного
// токена для сайта. Токен случайный, в базе хранится только HMAC-хеш,
// новая выдача сразу отзывает предыдущий токен.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
)

// Status — результат проверки токена.
type Status int

const (
	StatusInvalid Status = iota
	StatusExpired
	StatusValid
)

type Authority struct {
	admins map[int64]struct{}
	secret []byte
	ttl    time.Duration
	repo   model.CredentialRepo
	now    func() time.Time
}

func New(adminIDs []int64, secret string, ttl time.Duration, repo model.CredentialRepo) *Authority {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Authority{
		admins: admins,
		secret: []byte(secret),
		ttl:    ttl,
		repo:   repo,
		now:    time.Now,
	}
}

// IsAdmin reports whether chatID is in the static allowlist.
func (a *Authority) IsAdmin(chatID int64) bool {
	_, ok := a.admins[chatID]
	return ok
}

// Issue выдаёт новый токен и перезаписывает единственную строку учётки.
// Без секрета выдача запрещена: молчаливо-разрешающего режима нет.
func (a *Authority) Issue(ctx context.Context, chatID int64) (string, time.Time, error) {
	if len(a.secret) == 0 {
		return "", time.Time{}, errs.New("token secret is not configured")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, errs.New("failed to generate token").Wrap(err)
	}
	token := hex.EncodeToString(raw)

	issuedAt := a.now()
	cred := model.Credential{
		TokenHash:    a.hash(token),
		IssuedAt:     issuedAt,
		ExpiresAt:    issuedAt.Add(a.ttl),
		IssuerChatID: chatID,
	}
	if err := a.repo.Upsert(ctx, cred); err != nil {
		return "", time.Time{}, errs.New("failed to store credential").Wrap(err)
	}
	return token, cred.ExpiresAt, nil
}

// Verify сверяет хеш сырого токена с хранимым и проверяет срок действия.
func (a *Authority) Verify(ctx context.Context, token string) (Status, error) {
	if len(a.secret) == 0 {
		return StatusInvalid, errs.New("token secret is not configured")
	}

	cred, err := a.repo.Get(ctx)
	if err != nil {
		return StatusInvalid, errs.New("failed to load credential").Wrap(err)
	}
	if cred == nil {
		return StatusInvalid, nil
	}

	if !hmac.Equal([]byte(a.hash(token)), []byte(cred.TokenHash)) {
		return StatusInvalid, nil
	}
	if !a.now().Before(cred.ExpiresAt) {
		return StatusExpired, nil
	}
	return StatusValid, nil
}

func (a *Authority) hash(token string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
