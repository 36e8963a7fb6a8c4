// Package repository defines data access interfaces for ShareIt.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, embedded SQLite, in-memory for testing)
// while keeping the service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/openshare/shareit/internal/domain"
)

// Page describes a page of results. The platform's wire contract carries an
// offset-like "from" parameter, but the origin API resolved it to a page
// index via integer division; NewPage preserves that behavior.
type Page struct {
	// Number is the zero-based page index.
	Number int

	// Size is the page length.
	Size int
}

// NewPage converts from/size query parameters into a Page.
// from values that are not exact multiples of size snap to a page boundary.
func NewPage(from, size int) Page {
	return Page{Number: from / size, Size: size}
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns domain.ErrUserNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update overwrites an existing user.
	// Returns domain.ErrEmailTaken on a duplicate email and
	// domain.ErrUserNotFound if the user no longer exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Deleting an absent user is not an error.
	Delete(ctx context.Context, id int64) error

	// List returns all users. Order is unspecified.
	List(ctx context.Context) ([]*domain.User, error)
}

// =============================================================================
// Item Repository
// =============================================================================

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	// Create persists a new item and assigns its ID.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by ID.
	// Returns domain.ErrItemNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// Update overwrites an existing item.
	Update(ctx context.Context, item *domain.Item) error

	// ListByOwner returns the items owned by ownerID, ordered by ID ascending.
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*domain.Item, error)

	// Search returns available items whose name or description contains text,
	// case-insensitively.
	Search(ctx context.Context, text string, page Page) ([]*domain.Item, error)

	// ListByRequestIDs returns all items fulfilling any of the given item
	// requests, ordered by request ID. Used to annotate request listings in
	// one batched query.
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error)
}

// =============================================================================
// Item Request Repository
// =============================================================================

// RequestRepository defines the interface for item request data access.
type RequestRepository interface {
	// Create persists a new item request and assigns its ID.
	Create(ctx context.Context, req *domain.ItemRequest) error

	// GetByID retrieves an item request by ID.
	// Returns domain.ErrRequestNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)

	// ListByRequester returns all requests authored by userID,
	// newest-created first.
	ListByRequester(ctx context.Context, userID int64) ([]*domain.ItemRequest, error)

	// ListOthers returns requests not authored by userID, newest-created first.
	ListOthers(ctx context.Context, userID int64, page Page) ([]*domain.ItemRequest, error)
}

// =============================================================================
// Booking Repository
// =============================================================================

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	// Create persists a new booking and assigns its ID.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	// Returns domain.ErrBookingNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// UpdateStatus sets the status of a booking.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error

	// ListByBooker returns bookings made by bookerID in the given state
	// bucket, ordered by start descending. Temporal buckets are evaluated
	// against now.
	ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time, page Page) ([]*domain.Booking, error)

	// ListByOwner returns bookings on items owned by ownerID in the given
	// state bucket, ordered by start descending.
	ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time, page Page) ([]*domain.Booking, error)

	// FindLastForItem returns the latest APPROVED booking of the item whose
	// start is at or before now, or nil when there is none.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)

	// FindNextForItem returns the earliest APPROVED booking of the item whose
	// start is after now, or nil when there is none.
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)

	// ListApprovedForItems returns all APPROVED bookings of the given items,
	// ordered by start ascending. Used to annotate owner item listings in
	// one batched query.
	ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error)

	// HasPastBooking reports whether bookerID has at least one booking of the
	// item that ended strictly before now, regardless of status.
	HasPastBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

// =============================================================================
// Comment Repository
// =============================================================================

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	// Create persists a new comment and assigns its ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByItem returns all comments on the item.
	ListByItem(ctx context.Context, itemID int64) ([]*domain.Comment, error)

	// ListByItems returns all comments on any of the given items, grouped by
	// item via the caller. Used to annotate owner item listings.
	ListByItems(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error)
}
