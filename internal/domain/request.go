package domain

import "time"

// MaxRequestDescriptionLen is the maximum length of an item request description.
const MaxRequestDescriptionLen = 512

// ItemRequest is a standing ask for an item that does not yet exist in the
// catalog. Requests are read-only after creation; zero or more items may
// later reference a request as their fulfillment source.
type ItemRequest struct {
	// ID is the unique identifier for the request (auto-generated).
	ID int64 `json:"id"`

	// Description states what item is wanted. Non-blank, at most 512 chars.
	Description string `json:"description"`

	// RequesterID references the user who posted the request.
	RequesterID int64 `json:"requesterId"`

	// Created is the server-assigned creation timestamp. Immutable.
	Created time.Time `json:"created"`
}

// NewItemRequest creates a new ItemRequest with the creation time set to now.
func NewItemRequest(requesterID int64, description string) *ItemRequest {
	return &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     time.Now().UTC(),
	}
}
