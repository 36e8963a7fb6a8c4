// Package domain contains the core business entities for ShareIt.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the sharing platform.
package domain

// User represents a registered user of the platform.
// Users own items, book items owned by others, and post item requests.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Name is the display name. Must be non-blank on creation.
	Name string `json:"name"`

	// Email is the user's contact address.
	// Must be a valid email address and is globally unique.
	Email string `json:"email"`
}

// NewUser creates a new User pending persistence.
func NewUser(name, email string) *User {
	return &User{
		Name:  name,
		Email: email,
	}
}
