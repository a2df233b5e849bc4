package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

// Единственная строка в таблице admin_credential; ключ всегда 'admin'.
const credentialKey = "admin"

type PGRepo struct{ pool *pgxpool.Pool }

func NewRepo(ctx context.Context, dsn string) (*PGRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS admin_credential (
			key            TEXT PRIMARY KEY,
			token_hash     TEXT        NOT NULL,
			issued_at      TIMESTAMPTZ NOT NULL,
			expires_at     TIMESTAMPTZ NOT NULL,
			issuer_chat_id BIGINT      NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PGRepo{pool: pool}, nil
}

func (r *PGRepo) Close() { r.pool.Close() }

// Upsert overwrites the single credential row. The previous token hash is
// replaced, so any earlier token stops verifying immediately.
func (r *PGRepo) Upsert(ctx context.Context, c model.Credential) error {
	const q = `
		INSERT INTO admin_credential (key, token_hash, issued_at, expires_at, issuer_chat_id)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (key) DO UPDATE
		   SET token_hash     = EXCLUDED.token_hash,
		       issued_at      = EXCLUDED.issued_at,
		       expires_at     = EXCLUDED.expires_at,
		       issuer_chat_id = EXCLUDED.issuer_chat_id;
	`
	_, err := r.pool.Exec(ctx, q, credentialKey, c.TokenHash, c.IssuedAt, c.ExpiresAt, c.IssuerChatID)
	return err
}

// Get returns the current credential row or (nil, nil) when none was issued yet.
func (r *PGRepo) Get(ctx context.Context) (*model.Credential, error) {
	const q = `
		SELECT token_hash, issued_at, expires_at, issuer_chat_id
		FROM admin_credential
		WHERE key = $1;
	`
	var c model.Credential
	err := r.pool.QueryRow(ctx, q, credentialKey).Scan(&c.TokenHash, &c.IssuedAt, &c.ExpiresAt, &c.IssuerChatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
