package domain

// Item represents a listable possession offered for sharing.
type Item struct {
	// ID is the unique identifier for the item (auto-generated).
	ID int64 `json:"id"`

	// Name is the short display name of the item.
	Name string `json:"name"`

	// Description is the free-text description.
	Description string `json:"description"`

	// Available indicates whether the item can currently be booked.
	// Unavailable items never appear in search results.
	Available bool `json:"available"`

	// OwnerID references the owning user. Set at creation, never reassigned.
	OwnerID int64 `json:"ownerId"`

	// RequestID optionally references the ItemRequest this item fulfills.
	// Set at creation only; nil when the item was listed spontaneously.
	RequestID *int64 `json:"requestId,omitempty"`
}

// NewItem creates a new Item owned by ownerID.
func NewItem(ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
}

// IsOwnedBy reports whether userID is the owner of the item.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID == userID
}
