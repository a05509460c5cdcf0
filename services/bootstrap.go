package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/gaffer-portfolio-backend/config"
	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

var ErrDefaultAdminPassword = errors.New("refusing to create the admin account with the built-in password in production")

// AdminStore is the part of the admin repo the bootstrap needs.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Add(ctx context.Context, admin *models.AdminUser) error
}

// BootstrapAdmin creates the configured admin account when no account with
// that username exists. It reports whether an account was created.
func BootstrapAdmin(ctx context.Context, store AdminStore, creds *Credentials, admin config.AdminSettings, production bool) (bool, error) {
	existing, err := store.FindByUsername(ctx, admin.Username)
	if err != nil {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	if admin.Password == config.DefaultAdminPassword {
		if production {
			return false, ErrDefaultAdminPassword
		}
		log.Warn().Str("username", admin.Username).Msg("creating admin with the default password; change ADMIN_PASSWORD")
	}

	hash, err := creds.HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	user := &models.AdminUser{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
	}
	if err := store.Add(ctx, user); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("username", user.Username).Msg("admin user created")
	return true, nil
}
