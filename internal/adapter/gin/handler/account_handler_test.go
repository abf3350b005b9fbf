package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"account-item-service/internal/usecase/account"
	apperrors "account-item-service/pkg/errors"
)

// MockAccountUsecase mocks the account usecase interface.
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) Register(ctx context.Context, in account.RegisterRequest) (*account.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.RegisterResponse), args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, in account.LoginRequest) (*account.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResponse), args.Error(1)
}

func setupAccountRouter(t *testing.T) (*gin.Engine, *MockAccountUsecase) {
	gin.SetMode(gin.TestMode)

	uc := new(MockAccountUsecase)
	h := NewAccountHandler(uc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	return r, uc
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterEndpoint_Success(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Register", mock.Anything, account.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "Secret123",
	}).Return(&account.RegisterResponse{UserID: "u1", Name: "Ana", Email: "ana@x.com"}, nil)

	w := performJSON(t, r, http.MethodPost, "/register", gin.H{
		"name":     "Ana",
		"email":    "ana@x.com",
		"password": "Secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Success", body["status"])
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "Ana", body["name"])
	assert.Equal(t, "ana@x.com", body["email"])
	uc.AssertExpectations(t)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	r, uc := setupAccountRouter(t)

	w := performJSON(t, r, http.MethodPost, "/register", gin.H{"email": "ana@x.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "name, email and password are required", body["message"])
	uc.AssertNotCalled(t, "Register")
}

func TestRegisterEndpoint_MalformedJSON(t *testing.T) {
	r, _ := setupAccountRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decodeBody(t, w)["status"])
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("user", "email already exists"))

	w := performJSON(t, r, http.MethodPost, "/register", gin.H{
		"name":     "Bo",
		"email":    "bo@x.com",
		"password": "p",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "email already exists", body["message"])
}

func TestRegisterEndpoint_InternalError(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Register", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	w := performJSON(t, r, http.MethodPost, "/register", gin.H{
		"name":     "Ana",
		"email":    "ana@x.com",
		"password": "p",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Untyped errors never leak their text to the client.
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "An internal error occurred", body["message"])
}

func TestLoginEndpoint_Success(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Login", mock.Anything, account.LoginRequest{
		Email:    "ana@x.com",
		Password: "Secret123",
	}).Return(&account.LoginResponse{UserID: "u1", Name: "Ana", Email: "ana@x.com"}, nil)

	w := performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    "ana@x.com",
		"password": "Secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Success", body["status"])
	assert.Equal(t, "u1", body["userId"])
	uc.AssertExpectations(t)
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	r, uc := setupAccountRouter(t)

	w := performJSON(t, r, http.MethodPost, "/login", gin.H{"email": "ana@x.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and password are required", decodeBody(t, w)["message"])
	uc.AssertNotCalled(t, "Login")
}

func TestLoginEndpoint_UnknownEmail(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("user", "no user found with that email"))

	w := performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    "ghost@x.com",
		"password": "p",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no user found with that email", decodeBody(t, w)["message"])
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	r, uc := setupAccountRouter(t)

	uc.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnauthorizedError("incorrect password"))

	w := performJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    "ana@x.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "incorrect password", decodeBody(t, w)["message"])
}
