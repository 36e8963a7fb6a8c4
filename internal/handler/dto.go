package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/service"
)

// wireTimeLayout is the timestamp format used on the wire. Timestamps carry
// no zone; they are interpreted as UTC.
const wireTimeLayout = "2006-01-02T15:04:05"

// wireTime marshals time values in the platform's wire format.
type wireTime time.Time

func (t wireTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(wireTimeLayout) + `"`), nil
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.Parse(wireTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = wireTime(parsed.UTC())
	return nil
}

// =============================================================================
// Requests
// =============================================================================

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type createCommentRequest struct {
	Text string `json:"text"`
}

type createItemRequestRequest struct {
	Description string `json:"description"`
}

type createBookingRequest struct {
	ItemID int64    `json:"itemId"`
	Start  wireTime `json:"start"`
	End    wireTime `json:"end"`
}

// =============================================================================
// Responses
// =============================================================================

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type commentResponse struct {
	ID         int64    `json:"id"`
	Text       string   `json:"text"`
	AuthorName string   `json:"authorName"`
	Created    wireTime `json:"created"`
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    wireTime(c.Created),
	}
}

// bookingHint is the short booking form embedded in item responses.
type bookingHint struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type itemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *bookingHint      `json:"lastBooking,omitempty"`
	NextBooking *bookingHint      `json:"nextBooking,omitempty"`
	Comments    []commentResponse `json:"comments"`
}

func toItemResponse(d *service.ItemDetails) itemResponse {
	resp := itemResponse{
		ID:          d.Item.ID,
		Name:        d.Item.Name,
		Description: d.Item.Description,
		Available:   d.Item.Available,
		RequestID:   d.Item.RequestID,
		Comments:    make([]commentResponse, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}
	if d.LastBooking != nil {
		resp.LastBooking = &bookingHint{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &bookingHint{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	return resp
}

func toItemResponses(details []*service.ItemDetails) []itemResponse {
	out := make([]itemResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toItemResponse(d))
	}
	return out
}

// itemRef is the short item form embedded in booking responses.
type itemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// userRef is the short user form embedded in booking responses.
type userRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID     int64                `json:"id"`
	Start  wireTime             `json:"start"`
	End    wireTime             `json:"end"`
	Status domain.BookingStatus `json:"status"`
	Booker userRef              `json:"booker"`
	Item   itemRef              `json:"item"`
}

func toBookingResponse(d *service.BookingDetails) bookingResponse {
	return bookingResponse{
		ID:     d.Booking.ID,
		Start:  wireTime(d.Booking.Start),
		End:    wireTime(d.Booking.End),
		Status: d.Booking.Status,
		Booker: userRef{ID: d.Booker.ID, Name: d.Booker.Name},
		Item:   itemRef{ID: d.Item.ID, Name: d.Item.Name},
	}
}

func toBookingResponses(details []*service.BookingDetails) []bookingResponse {
	out := make([]bookingResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toBookingResponse(d))
	}
	return out
}

// requestItem is the item form embedded in item request responses.
type requestItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
	OwnerID     int64  `json:"ownerId"`
}

type requestResponse struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Created     wireTime      `json:"created"`
	Items       []requestItem `json:"items"`
}

func toRequestResponse(d *service.RequestDetails) requestResponse {
	resp := requestResponse{
		ID:          d.ID,
		Description: d.Description,
		Created:     wireTime(d.Created),
		Items:       make([]requestItem, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		resp.Items = append(resp.Items, requestItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			RequestID:   item.RequestID,
			OwnerID:     item.OwnerID,
		})
	}
	return resp
}

func toRequestResponses(details []*service.RequestDetails) []requestResponse {
	out := make([]requestResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toRequestResponse(d))
	}
	return out
}
