package item

import "context"

// Usecase defines the interface for item business logic operations.
type Usecase interface {
	CreateItem(ctx context.Context, in CreateItemRequest) (*CreateItemResponse, error)
	ListItems(ctx context.Context, in ListItemsRequest) (*ListItemsResponse, error)
	UpdateItem(ctx context.Context, in UpdateItemRequest) (*UpdateItemResponse, error)
	DeleteItem(ctx context.Context, in DeleteItemRequest) (*DeleteItemResponse, error)
}
