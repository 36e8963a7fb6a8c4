package sqlite

import "github.com/openshare/shareit/internal/repository"

// NewRepositories creates the full repository set backed by one SQLite database.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Item:    NewItemRepository(db),
		Request: NewRequestRepository(db),
		Booking: NewBookingRepository(db),
		Comment: NewCommentRepository(db),
	}
}
