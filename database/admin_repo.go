package database

import (
	"context"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindByUsername returns nil without error when no admin has the username.
func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admins []models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&admins).Error
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		return nil, nil
	}
	return &admins[0], nil
}

func (r *AdminRepo) Add(ctx context.Context, admin *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *AdminRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.AdminUser{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Count(&count).Error
	return count, err
}
