package account

import "time"

// User represents a registered account in the system.
type User struct {
	ID        string    // ID is the system-generated identifier, opaque to callers
	Name      string    // Name is the full name of the user
	Email     string    // Email is the unique email address, case-sensitive as stored
	Password  string    // Password is stored verbatim as supplied
	CreatedAt time.Time // CreatedAt is when the account was registered
}
