// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"atelier/internal/models"

	"gorm.io/gorm"
)

// ContactMessageRepository defines the interface for contact message data operations
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, status models.MessageStatus) ([]*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uint) error
}

// contactMessageRepository implements ContactMessageRepository
type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// List returns messages newest first. An empty status means no filter.
func (r *contactMessageRepository) List(ctx context.Context, status models.MessageStatus) ([]*models.ContactMessage, error) {
	var msgs []*models.ContactMessage
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&msgs).Error
	return msgs, err
}

// UpdateStatus writes the new status and returns the post-update row, or
// (nil, nil) when no message has that id.
func (r *contactMessageRepository) UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) (*models.ContactMessage, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *contactMessageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id).Error
}
