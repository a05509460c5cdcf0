package database

import (
	"context"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gorm.io/gorm"
)

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db}
}

// FindAll returns up to limit clients by display order
func (r *ClientRepo) FindAll(ctx context.Context, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("sort_order asc, created_at asc").Limit(limit).Find(&clients).Error
	return clients, err
}

// FindActive returns up to limit active clients by display order
func (r *ClientRepo) FindActive(ctx context.Context, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order asc, created_at asc").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepo) FindByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepo) Add(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// Update returns the number of rows matched by id.
func (r *ClientRepo) Update(ctx context.Context, id string, patch models.ClientPatch, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Updates(patch.Columns(now))
	return res.RowsAffected, res.Error
}

func (r *ClientRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{})
	return res.RowsAffected, res.Error
}
