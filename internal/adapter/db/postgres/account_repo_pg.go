package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"account-item-service/internal/domain/account"
	apperrors "account-item-service/pkg/errors"
)

// AccountRepoPG implements the account Repository interface using GORM.
type AccountRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAccountRepoPG creates a new instance of AccountRepoPG.
func NewAccountRepoPG(db *gorm.DB, log *zap.Logger) *AccountRepoPG {
	return &AccountRepoPG{db: db, log: log}
}

// AccountSchema represents the database schema for the users table.
type AccountSchema struct {
	ID        string    `gorm:"primaryKey;size:36"` // System-generated UUID
	Name      string    `gorm:"not null"`           // User's full name (required)
	Email     string    `gorm:"not null;unique"`    // Unique email, enforced at the storage layer
	Password  string    `gorm:"not null"`           // Stored verbatim as supplied
	CreatedAt time.Time // Registration time
}

// TableName specifies the table name for the AccountSchema model.
func (AccountSchema) TableName() string {
	return "users"
}

// isDuplicateErr reports whether err is a unique-constraint violation.
// The storage-layer constraint is what closes the race between the email
// pre-check and the insert, so this must be recognized across drivers.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(strings.ToLower(msg), "duplicate key")
}

// Create inserts a new user, assigning a fresh identifier.
// A unique-constraint violation on email is surfaced as a ConflictError.
func (r *AccountRepoPG) Create(ctx context.Context, u *account.User) (*account.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := AccountSchema{
		ID:       uuid.NewString(),
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateErr(err) {
			r.log.Warn("email already registered", zap.String("email", u.Email))
			return nil, apperrors.NewConflictError("user", "email already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return toAccountDomain(&model), nil
}

// GetByEmail retrieves a user by email address.
// Returns nil, nil when no user has that email.
func (r *AccountRepoPG) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	var model AccountSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toAccountDomain(&model), nil
}

func toAccountDomain(m *AccountSchema) *account.User {
	return &account.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}
