package item

import "time"

// Item represents an item DTO (Data Transfer Object) for API responses.
type Item struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateItemRequest represents the request payload for creating an item.
// Description may be empty; it defaults to empty text.
type CreateItemRequest struct {
	Title       string `validate:"required"`
	Description string
	OwnerID     string `validate:"required"`
}

// CreateItemResponse represents the response payload after creating an item.
type CreateItemResponse struct {
	Item Item
}

// ListItemsRequest represents the request payload for listing a user's items.
type ListItemsRequest struct {
	OwnerID string `validate:"required"`
}

// ListItemsResponse represents the response payload for item listing,
// ordered newest first.
type ListItemsResponse struct {
	Items []Item
}

// UpdateItemRequest represents the request payload for updating an item.
// Both fields are required; the owner identifier is never updatable.
type UpdateItemRequest struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// UpdateItemResponse represents the response payload after updating an item.
type UpdateItemResponse struct {
	Item Item
}

// DeleteItemRequest represents the request payload for deleting an item.
type DeleteItemRequest struct {
	ID string `validate:"required"`
}

// DeleteItemResponse represents the response payload after deleting an item.
type DeleteItemResponse struct {
	ID string
}
