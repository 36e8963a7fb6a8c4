// Package domain contains the core business entities for ShareIt.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another user already uses the email address.
	ErrEmailTaken = errors.New("email already in use")

	// ===========================================
	// Item Errors
	// ===========================================

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrNotOwner indicates the acting user does not own the item.
	ErrNotOwner = errors.New("user is not the owner of the item")

	// ErrItemUnavailable indicates the item cannot be booked right now.
	ErrItemUnavailable = errors.New("item is not available for booking")

	// ===========================================
	// Item Request Errors
	// ===========================================

	// ErrRequestNotFound indicates the requested item request does not exist.
	ErrRequestNotFound = errors.New("item request not found")

	// ===========================================
	// Booking Errors
	// ===========================================

	// ErrBookingNotFound indicates the booking does not exist or the viewer
	// has no right to see it. Visibility failures deliberately surface as
	// not-found rather than permission-denied.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOwnItemBooking indicates a user attempted to book their own item.
	ErrOwnItemBooking = errors.New("booking your own item is not allowed")

	// ErrInvalidPeriod indicates the booking end is not strictly after the start.
	ErrInvalidPeriod = errors.New("booking end must be after start")

	// ErrAlreadyDecided indicates the booking has already been approved or
	// rejected and may not transition again.
	ErrAlreadyDecided = errors.New("booking has already been decided")

	// ===========================================
	// Comment Errors
	// ===========================================

	// ErrCommentNotAllowed indicates the author has no completed booking on
	// the item and therefore no right to comment.
	ErrCommentNotAllowed = errors.New("no completed booking: comment not allowed")

	// ===========================================
	// Input Errors
	// ===========================================

	// ErrValidation indicates malformed or blank input.
	ErrValidation = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with a field-level message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
