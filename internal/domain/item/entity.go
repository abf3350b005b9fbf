package item

import "time"

// Item is a single title/description entry on a user's personal list.
// OwnerID is a weak reference to the creating user: it is stored and used as
// a lookup key, never validated against the account store.
type Item struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
