package database

import (
	"context"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gorm.io/gorm"
)

type PortfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) *PortfolioRepo {
	return &PortfolioRepo{db}
}

// FindFirst returns the oldest portfolio row, or nil when none exists.
func (r *PortfolioRepo) FindFirst(ctx context.Context) (*models.Portfolio, error) {
	return findFirstPortfolio(r.db.WithContext(ctx))
}

// EnsureDefault returns the stored portfolio, creating the default profile
// when the table is empty.
func (r *PortfolioRepo) EnsureDefault(ctx context.Context) (*models.Portfolio, error) {
	existing, err := r.FindFirst(ctx)
	if err != nil || existing != nil {
		return existing, err
	}

	doc := models.DefaultPortfolio()
	if err := r.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Apply patches the stored portfolio, or inserts one built from the patch
// when none exists. It reports how many rows were written.
func (r *PortfolioRepo) Apply(ctx context.Context, patch models.PortfolioPatch, now time.Time) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findFirstPortfolio(tx)
		if err != nil {
			return err
		}
		if current == nil {
			doc := patch.NewPortfolio()
			res := tx.Create(&doc)
			affected = res.RowsAffected
			return res.Error
		}
		res := tx.Model(&models.Portfolio{}).Where("id = ?", current.ID).Updates(patch.Columns(now))
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func findFirstPortfolio(db *gorm.DB) (*models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := db.Order("created_at asc").Limit(1).Find(&portfolios).Error; err != nil {
		return nil, err
	}
	if len(portfolios) == 0 {
		return nil, nil
	}
	return &portfolios[0], nil
}
