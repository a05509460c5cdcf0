package database

import (
	"context"
	"time"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns up to limit projects, newest first
func (r *ProjectRepo) FindAll(ctx context.Context, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&projects).Error
	return projects, err
}

// FindByFeatured returns up to limit projects with the given featured flag, newest first
func (r *ProjectRepo) FindByFeatured(ctx context.Context, featured bool, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("featured = ?", featured).
		Order("created_at desc").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project; the store assigns its id
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update writes the patch to the project with the given id and returns the
// number of rows matched
func (r *ProjectRepo) Update(ctx context.Context, id string, patch models.ProjectPatch, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(patch.Columns(now))
	return res.RowsAffected, res.Error
}

// Delete removes a project by id and returns the number of rows deleted
func (r *ProjectRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	return res.RowsAffected, res.Error
}
