package handler

import (
	"net/http"
	"time"

	"account-item-service/internal/usecase/item"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	uc  item.Usecase
	log *zap.Logger
}

// NewItemHandler creates a new ItemHandler instance.
func NewItemHandler(uc item.Usecase, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		uc:  uc,
		log: log,
	}
}

// CreateItemRequest represents the HTTP request body for creating an item.
// The client supplies the owner identifier directly; there is no session to
// derive it from.
type CreateItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	UserID      string `json:"userId" binding:"required"`
}

// UpdateItemRequest represents the HTTP request body for updating an item.
type UpdateItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ItemResponse represents the HTTP response for a single item.
type ItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemEnvelope is the success envelope for item create and update.
type ItemEnvelope struct {
	Status string       `json:"status"`
	Item   ItemResponse `json:"item"`
}

// DeleteResponse is the success envelope for item deletion.
type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse("title and userId are required"))
		return
	}

	resp, err := h.uc.CreateItem(c.Request.Context(), item.CreateItemRequest{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.UserID,
	})
	if err != nil {
		h.log.Warn("create item failed", zap.String("owner_id", req.UserID), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ItemEnvelope{
		Status: statusSuccess,
		Item:   toItemResponse(resp.Item),
	})
}

// ListItems handles GET /items/:userId
//
// Unlike every other endpoint this one responds with a bare JSON array,
// not a {status, ...} envelope. Callers special-case it.
func (h *ItemHandler) ListItems(c *gin.Context) {
	ownerID := c.Param("userId")

	resp, err := h.uc.ListItems(c.Request.Context(), item.ListItemsRequest{OwnerID: ownerID})
	if err != nil {
		h.log.Error("list items failed", zap.String("owner_id", ownerID), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	items := make([]ItemResponse, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = toItemResponse(it)
	}

	c.JSON(http.StatusOK, items)
}

// UpdateItem handles PUT /items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update item request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse("title and description are required"))
		return
	}

	resp, err := h.uc.UpdateItem(c.Request.Context(), item.UpdateItemRequest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.log.Warn("update item failed", zap.String("id", id), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ItemEnvelope{
		Status: statusSuccess,
		Item:   toItemResponse(resp.Item),
	})
}

// DeleteItem handles DELETE /items/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.uc.DeleteItem(c.Request.Context(), item.DeleteItemRequest{ID: id}); err != nil {
		h.log.Warn("delete item failed", zap.String("id", id), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Status:  statusSuccess,
		Message: "Item deleted successfully",
	})
}

func toItemResponse(it item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
