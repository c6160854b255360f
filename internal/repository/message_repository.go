package repository

import (
	"context" // Context for queries
	"fmt"     // Error wrapping

	"employee_messaging/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// MessageRepository stores broadcast messages
type MessageRepository struct {
	db *gorm.DB // Database handle
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts msg and fills in its ID
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	// Sender is loaded for display only, never written through
	if err := r.db.WithContext(ctx).Omit("Sender").Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uint) (*domain.Message, error) {
	var msg domain.Message
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, notFound(err, domain.ErrMessageNotFound) // Missing rows map to the sentinel
	}
	return &msg, nil
}

// LatestID returns the highest message ID, 0 when there are none
func (r *MessageRepository) LatestID(ctx context.Context) (uint, error) {
	var latest uint
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Select("COALESCE(MAX(id), 0)"). // Empty table yields 0 rather than NULL
		Scan(&latest).Error
	if err != nil {
		return 0, fmt.Errorf("latest message id: %w", err)
	}
	return latest, nil
}

// ListByOwner returns the messages sent by userID, oldest first
func (r *MessageRepository) ListByOwner(ctx context.Context, userID uint) ([]domain.Message, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// ListAll returns every message, oldest first
func (r *MessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *MessageRepository) list(query *gorm.DB) ([]domain.Message, error) {
	msgs := []domain.Message{} // Empty slice, not nil, so templates and JSON see a list
	if err := query.Preload("Sender").Order("id asc").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
