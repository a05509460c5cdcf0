package database

import (
	"context"

	"github.com/rpupo63/gaffer-portfolio-backend/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// Add stores a visitor message. Messages are never deleted.
func (r *MessageRepo) Add(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindPage returns one page of messages, newest first, along with the total
// number of messages matching the filter. Page numbers start at 1.
func (r *MessageRepo) FindPage(ctx context.Context, filter models.MessageFilter, page, limit int) ([]models.ContactMessage, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
		if filter.Read != nil {
			query = query.Where(`"read" = ?`, *filter.Read)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	messages := []models.ContactMessage{}
	err := scoped().
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Update sets the read and replied flags and returns the number of rows
// matched by id, so repeating the same patch still matches.
func (r *MessageRepo) Update(ctx context.Context, id string, patch models.MessagePatch) (int64, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Count(&count).Error
		return count, err
	}
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}
