package item

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "account-item-service/internal/domain/item"
	apperrors "account-item-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for item data access operations.
type Repository interface {
	// Create inserts a new item with a freshly assigned identifier.
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	// ListByOwner returns the owner's items ordered by creation time
	// descending. No items is an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	// Update overwrites title and description in place. Unknown identifiers
	// surface as a NotFoundError.
	Update(ctx context.Context, id, title, description string) (*domain.Item, error)
	// Delete removes an item permanently. Unknown identifiers surface as a
	// NotFoundError.
	Delete(ctx context.Context, id string) (*domain.Item, error)
}

// usecase implements the business logic for item operations.
type usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new item usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log, validate: validator.New()}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateItem creates a new item for the supplied owner. The owner identifier
// is stored as given; it is never checked against the account store.
func (uc *usecase) CreateItem(ctx context.Context, in CreateItemRequest) (*CreateItemResponse, error) {
	uc.log.Info("creating item", zap.String("title", in.Title), zap.String("owner_id", in.OwnerID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	created, err := uc.repo.Create(ctx, &domain.Item{
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     in.OwnerID,
	})
	if err != nil {
		uc.log.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	return &CreateItemResponse{Item: toDTO(created)}, nil
}

// ListItems retrieves all items belonging to the owner, newest first.
func (uc *usecase) ListItems(ctx context.Context, in ListItemsRequest) (*ListItemsResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	domainItems, err := uc.repo.ListByOwner(ctx, in.OwnerID)
	if err != nil {
		uc.log.Error("failed to list items", zap.String("owner_id", in.OwnerID), zap.Error(err))
		return nil, err
	}

	items := make([]Item, len(domainItems))
	for i, di := range domainItems {
		items[i] = toDTO(&di)
	}

	return &ListItemsResponse{Items: items}, nil
}

// UpdateItem overwrites title and description of an existing item.
func (uc *usecase) UpdateItem(ctx context.Context, in UpdateItemRequest) (*UpdateItemResponse, error) {
	uc.log.Info("updating item", zap.String("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	updated, err := uc.repo.Update(ctx, in.ID, in.Title, in.Description)
	if err != nil {
		uc.log.Error("failed to update item", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &UpdateItemResponse{Item: toDTO(updated)}, nil
}

// DeleteItem permanently removes an item. Deleting an already-deleted
// identifier fails with a NotFoundError.
func (uc *usecase) DeleteItem(ctx context.Context, in DeleteItemRequest) (*DeleteItemResponse, error) {
	uc.log.Info("deleting item", zap.String("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	deleted, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete item", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteItemResponse{ID: deleted.ID}, nil
}

func toDTO(it *domain.Item) Item {
	return Item{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
