package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"account-item-service/internal/domain/item"
	apperrors "account-item-service/pkg/errors"
)

// ItemRepoPG implements the item Repository interface using GORM.
type ItemRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewItemRepoPG creates a new instance of ItemRepoPG.
func NewItemRepoPG(db *gorm.DB, log *zap.Logger) *ItemRepoPG {
	return &ItemRepoPG{db: db, log: log}
}

// ItemSchema represents the database schema for the items table.
type ItemSchema struct {
	ID          string    `gorm:"primaryKey;size:36"` // System-generated UUID
	Title       string    `gorm:"not null"`           // Item title (required)
	Description string    // May be empty
	OwnerID     string    `gorm:"not null;index"` // Weak reference to the owning user, no FK
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the ItemSchema model.
func (ItemSchema) TableName() string {
	return "items"
}

// Create inserts a new item, assigning a fresh identifier.
func (r *ItemRepoPG) Create(ctx context.Context, it *item.Item) (*item.Item, error) {
	if it == nil {
		return nil, errors.New("item cannot be nil")
	}

	model := ItemSchema{
		ID:          uuid.NewString(),
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create item in db", zap.Error(err), zap.String("owner_id", it.OwnerID))
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	r.log.Info("item created in db", zap.String("id", model.ID), zap.String("owner_id", model.OwnerID))
	return toItemDomain(&model), nil
}

// ListByOwner retrieves all items belonging to ownerID, newest first.
// An owner with no items yields an empty slice, not an error.
func (r *ItemRepoPG) ListByOwner(ctx context.Context, ownerID string) ([]item.Item, error) {
	var models []ItemSchema
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		r.log.Error("failed to list items from db", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]item.Item, len(models))
	for i, model := range models {
		items[i] = *toItemDomain(&model)
	}

	return items, nil
}

// Update overwrites title and description of an existing item in place.
// The owner identifier never changes through this operation.
func (r *ItemRepoPG) Update(ctx context.Context, id, title, description string) (*item.Item, error) {
	var model ItemSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("item not found for update", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("item", "item not found")
		}
		r.log.Error("failed to get item from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	model.Title = title
	model.Description = description

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update item in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	r.log.Info("item updated in db", zap.String("id", model.ID))
	return toItemDomain(&model), nil
}

// Delete permanently removes an item by identifier.
func (r *ItemRepoPG) Delete(ctx context.Context, id string) (*item.Item, error) {
	var model ItemSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("item not found for delete", zap.String("id", id))
			return nil, apperrors.NewNotFoundError("item", "item not found")
		}
		r.log.Error("failed to get item from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&ItemSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete item in db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	r.log.Info("item deleted in db", zap.String("id", id))
	return toItemDomain(&model), nil
}

func toItemDomain(m *ItemSchema) *item.Item {
	return &item.Item{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
