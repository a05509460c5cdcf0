package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
)

func TestPasswordHashing(t *testing.T) {
	c := NewCredentials("secret", 0)
	first, err := c.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, _ := c.HashPassword("hunter2")
	if first == second {
		t.Fatalf("expected a fresh salt per hash")
	}
	if !c.VerifyPassword("hunter2", first) {
		t.Fatalf("correct password rejected")
	}
	if c.VerifyPassword("hunter3", first) {
		t.Fatalf("wrong password accepted")
	}
	if c.VerifyPassword("hunter2", "not-a-hash") {
		t.Fatalf("garbage hash accepted")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	c := NewCredentials("secret", 0)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	token, expiresAt, err := c.IssueToken("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected a 24h token, expires %v", expiresAt)
	}

	claims, err := c.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}

	c.now = func() time.Time { return now.Add(25 * time.Hour) }
	if _, err := c.VerifyToken(token); !errs.IsUnauthorized(err) {
		t.Fatalf("expired token should be unauthorized, got %v", err)
	}
}

func TestVerifyTokenRejectsForeignTokens(t *testing.T) {
	c := NewCredentials("secret", time.Hour)
	other := NewCredentials("other-secret", time.Hour)

	forged, _, _ := other.IssueToken("admin")
	if _, err := c.VerifyToken(forged); !errs.IsUnauthorized(err) {
		t.Fatalf("token signed with another secret accepted: %v", err)
	}

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if _, err := c.VerifyToken(noSubject); !errs.IsUnauthorized(err) {
		t.Fatalf("token without subject accepted: %v", err)
	}

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin"}).SignedString([]byte("secret"))
	if _, err := c.VerifyToken(noExpiry); !errs.IsUnauthorized(err) {
		t.Fatalf("token without expiry accepted: %v", err)
	}

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if _, err := c.VerifyToken(hs512); !errs.IsUnauthorized(err) {
		t.Fatalf("unexpected algorithm accepted: %v", err)
	}

	if _, err := c.VerifyToken("not.a.token"); !errs.IsUnauthorized(err) {
		t.Fatalf("garbage accepted: %v", err)
	}
}

type memoryAdmins struct {
	admins []*models.AdminUser
}

func (m *memoryAdmins) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryAdmins) Add(_ context.Context, admin *models.AdminUser) error {
	m.admins = append(m.admins, admin)
	return nil
}

func TestBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	creds := NewCredentials("secret", 0)
	settings := config.AdminSettings{Username: "admin", Email: "a@x.com", Password: "s3cret!"}

	store := &memoryAdmins{}
	created, err := BootstrapAdmin(ctx, store, creds, settings, true)
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got %v %v", created, err)
	}
	if !creds.VerifyPassword("s3cret!", store.admins[0].PasswordHash) {
		t.Fatalf("stored hash does not match the configured password")
	}

	created, err = BootstrapAdmin(ctx, store, creds, settings, true)
	if err != nil || created || len(store.admins) != 1 {
		t.Fatalf("second bootstrap must be a no-op, got %v %v", created, err)
	}
}

func TestBootstrapAdminDefaultPassword(t *testing.T) {
	ctx := context.Background()
	creds := NewCredentials("secret", 0)
	settings := config.AdminSettings{Username: "admin", Email: "a@x.com", Password: config.DefaultAdminPassword}

	_, err := BootstrapAdmin(ctx, &memoryAdmins{}, creds, settings, true)
	if !errors.Is(err, ErrDefaultAdminPassword) {
		t.Fatalf("production must refuse the default password, got %v", err)
	}

	created, err := BootstrapAdmin(ctx, &memoryAdmins{}, creds, settings, false)
	if err != nil || !created {
		t.Fatalf("development accepts the default password, got %v %v", created, err)
	}
}
