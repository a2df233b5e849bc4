package auth

import (
	"context"
	"testing"
	"time"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
)

// memRepo — CredentialRepo в памяти для тестов.
type memRepo struct {
	cred *model.Credential
}

func (m *memRepo) Upsert(_ context.Context, cred model.Credential) error {
	m.cred = &cred
	return nil
}

func (m *memRepo) Get(_ context.Context) (*model.Credential, error) {
	return m.cred, nil
}

func TestIsAdmin(t *testing.T) {
	a := New([]int64{10, 20}, "secret", time.Hour, &memRepo{})
	if !a.IsAdmin(10) || !a.IsAdmin(20) {
		t.Fatal("listed ids must be admins")
	}
	if a.IsAdmin(30) {
		t.Fatal("unknown id must not be an admin")
	}
}

func TestIssueAndVerify(t *testing.T) {
	repo := &memRepo{}
	a := New([]int64{10}, "secret", time.Hour, repo)
	ctx := context.Background()

	token, expiresAt, err := a.Issue(ctx, 10)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("token must be 32 random bytes in hex, got len %d", len(token))
	}
	if repo.cred == nil || repo.cred.TokenHash == token {
		t.Fatal("repo must hold a hash, never the raw token")
	}
	if !expiresAt.Equal(repo.cred.ExpiresAt) || repo.cred.IssuerChatID != 10 {
		t.Fatalf("stored credential: %+v", repo.cred)
	}

	status, err := a.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if status != StatusValid {
		t.Fatalf("fresh token: status %v", status)
	}

	status, err = a.Verify(ctx, "deadbeef")
	if err != nil || status != StatusInvalid {
		t.Fatalf("wrong token: status=%v err=%v", status, err)
	}
}

func TestReissueRevokesPrevious(t *testing.T) {
	repo := &memRepo{}
	a := New([]int64{10}, "secret", time.Hour, repo)
	ctx := context.Background()

	first, _, err := a.Issue(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := a.Issue(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("tokens must be unique per issue")
	}

	if status, _ := a.Verify(ctx, first); status != StatusInvalid {
		t.Fatalf("old token must be revoked, status %v", status)
	}
	if status, _ := a.Verify(ctx, second); status != StatusValid {
		t.Fatalf("new token must be valid, status %v", status)
	}
}

func TestVerifyExpiry(t *testing.T) {
	repo := &memRepo{}
	a := New([]int64{10}, "secret", time.Hour, repo)
	ctx := context.Background()

	base := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return base }

	token, _, err := a.Issue(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}

	a.now = func() time.Time { return base.Add(59 * time.Minute) }
	if status, _ := a.Verify(ctx, token); status != StatusValid {
		t.Fatalf("before expiry: status %v", status)
	}

	// Ровно в момент истечения токен уже не действует.
	a.now = func() time.Time { return base.Add(time.Hour) }
	if status, _ := a.Verify(ctx, token); status != StatusExpired {
		t.Fatalf("at expiry: status %v", status)
	}
}

func TestNoSecretFailsClosed(t *testing.T) {
	a := New([]int64{10}, "", time.Hour, &memRepo{})
	ctx := context.Background()

	if _, _, err := a.Issue(ctx, 10); err == nil {
		t.Fatal("issue without a secret must fail")
	}
	status, err := a.Verify(ctx, "anything")
	if err == nil || status != StatusInvalid {
		t.Fatalf("verify without a secret must fail closed: status=%v err=%v", status, err)
	}
}

func TestVerifyNoCredential(t *testing.T) {
	a := New([]int64{10}, "secret", time.Hour, &memRepo{})
	status, err := a.Verify(context.Background(), "token")
	if err != nil || status != StatusInvalid {
		t.Fatalf("no stored credential: status=%v err=%v", status, err)
	}
}
