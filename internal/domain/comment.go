package domain

import "time"

// Comment is post-stay feedback a past booker attaches to an item.
// Comments are immutable after creation.
type Comment struct {
	// ID is the unique identifier for the comment (auto-generated).
	ID int64 `json:"id"`

	// Text is the feedback body. Non-blank.
	Text string `json:"text"`

	// AuthorID references the commenting user.
	AuthorID int64 `json:"authorId"`

	// AuthorName is the commenting user's display name, denormalized on
	// read for presentation.
	AuthorName string `json:"authorName"`

	// ItemID references the commented item.
	ItemID int64 `json:"itemId"`

	// Created is the server-assigned creation timestamp.
	Created time.Time `json:"created"`
}

// NewComment creates a new Comment with the creation time set to now.
func NewComment(authorID, itemID int64, text string) *Comment {
	return &Comment{
		Text:     text,
		AuthorID: authorID,
		ItemID:   itemID,
		Created:  time.Now().UTC(),
	}
}
