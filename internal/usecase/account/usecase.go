package account

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "account-item-service/internal/domain/account"
	apperrors "account-item-service/pkg/errors"
	"account-item-service/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for account data access operations.
// It abstracts the data layer, allowing different implementations
// to be used interchangeably.
type Repository interface {
	// Create inserts a new user with a freshly assigned identifier.
	// A storage-layer unique violation on email surfaces as a ConflictError.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// GetByEmail retrieves a user by email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// usecase implements the business logic for account operations.
type usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new account usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// validation failure with a human-readable message.
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

// Register creates a new account after validating the request and checking
// email uniqueness. The pre-check is advisory only; the storage layer's
// unique constraint is what holds under concurrent registrations, and its
// violation is reported as the same ConflictError.
func (uc *usecase) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	uc.log.Info("registering user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("user", "email already exists")
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &RegisterResponse{
		UserID: created.ID,
		Name:   created.Name,
		Email:  created.Email,
	}, nil
}

// Login authenticates a user by email and password. An unknown email is a
// NotFoundError; a password mismatch is an UnauthorizedError.
func (uc *usecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	uc.log.Info("authenticating user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to get user by email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		uc.log.Warn("no user with that email", zap.String("email", in.Email))
		return nil, apperrors.NewNotFoundError("user", "no user found with that email")
	}

	if !security.ComparePassword(u.Password, in.Password) {
		uc.log.Warn("password mismatch", zap.String("email", in.Email))
		return nil, apperrors.NewUnauthorizedError("incorrect password")
	}

	return &LoginResponse{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}, nil
}
