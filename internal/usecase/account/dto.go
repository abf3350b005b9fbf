package account

// RegisterRequest represents the request payload for creating a new account.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterResponse represents the response payload after a successful
// registration.
type RegisterResponse struct {
	UserID string
	Name   string
	Email  string
}

// LoginRequest represents the request payload for authenticating a user.
type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResponse represents the response payload after a successful login.
type LoginResponse struct {
	UserID string
	Name   string
	Email  string
}
