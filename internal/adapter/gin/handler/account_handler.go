package handler

import (
	"net/http"

	"account-item-service/internal/usecase/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler handles HTTP requests for registration and login.
type AccountHandler struct {
	uc  account.Usecase
	log *zap.Logger
}

// NewAccountHandler creates a new AccountHandler instance.
func NewAccountHandler(uc account.Usecase, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest represents the HTTP request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the HTTP request body for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the success envelope shared by Register and Login.
// The returned userId is the sole credential the caller retains.
type AuthResponse struct {
	Status string `json:"status"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Register handles POST /register
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse("name, email and password are required"))
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), account.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("register failed", zap.String("email", req.Email), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Status: statusSuccess,
		UserID: resp.UserID,
		Name:   resp.Name,
		Email:  resp.Email,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse("email and password are required"))
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), account.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Status: statusSuccess,
		UserID: resp.UserID,
		Name:   resp.Name,
		Email:  resp.Email,
	})
}
