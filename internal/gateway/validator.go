package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/openshare/shareit/internal/domain"
)

// wireTimeLayout matches the timestamp format used on the wire.
const wireTimeLayout = "2006-01-02T15:04:05"

// validationError describes a rejected request.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// writeError writes the uniform error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// requireSharer checks the X-Sharer-User-Id header is a positive integer.
func requireSharer(r *http.Request) error {
	raw := r.Header.Get("X-Sharer-User-Id")
	if raw == "" {
		return invalidf("missing X-Sharer-User-Id header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return invalidf("invalid X-Sharer-User-Id header: %s", raw)
	}
	return nil
}

// validatePagination checks the from/size query parameters when present.
func validatePagination(r *http.Request) error {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return invalidf("from must be a non-negative integer")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return invalidf("size must be a positive integer")
		}
	}
	return nil
}

// validateState rejects unknown booking state filters before they reach the
// backend.
func validateState(r *http.Request) error {
	raw := r.URL.Query().Get("state")
	if raw == "" {
		return nil
	}
	if _, ok := domain.ParseBookingState(raw); !ok {
		return invalidf("Unknown state: %s", raw)
	}
	return nil
}

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// validateCreateUser requires a non-blank name and well-formed email.
func validateCreateUser(body []byte) error {
	var u userBody
	if err := json.Unmarshal(body, &u); err != nil {
		return invalidf("malformed request body")
	}
	if u.Name == nil || strings.TrimSpace(*u.Name) == "" {
		return invalidf("name must not be blank")
	}
	if u.Email == nil || strings.TrimSpace(*u.Email) == "" {
		return invalidf("email must not be blank")
	}
	if _, err := mail.ParseAddress(*u.Email); err != nil {
		return invalidf("invalid email format: %s", *u.Email)
	}
	return nil
}

// validateUpdateUser checks the email shape when one is supplied.
func validateUpdateUser(body []byte) error {
	var u userBody
	if err := json.Unmarshal(body, &u); err != nil {
		return invalidf("malformed request body")
	}
	if u.Email != nil && strings.TrimSpace(*u.Email) != "" {
		if _, err := mail.ParseAddress(*u.Email); err != nil {
			return invalidf("invalid email format: %s", *u.Email)
		}
	}
	return nil
}

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// validateCreateItem requires name, description and the availability flag.
func validateCreateItem(body []byte) error {
	var i itemBody
	if err := json.Unmarshal(body, &i); err != nil {
		return invalidf("malformed request body")
	}
	if i.Name == nil || strings.TrimSpace(*i.Name) == "" {
		return invalidf("item name must not be blank")
	}
	if i.Description == nil || strings.TrimSpace(*i.Description) == "" {
		return invalidf("item description must not be blank")
	}
	if i.Available == nil {
		return invalidf("available must be set")
	}
	return nil
}

type commentBody struct {
	Text *string `json:"text"`
}

// validateComment requires non-blank text.
func validateComment(body []byte) error {
	var c commentBody
	if err := json.Unmarshal(body, &c); err != nil {
		return invalidf("malformed request body")
	}
	if c.Text == nil || strings.TrimSpace(*c.Text) == "" {
		return invalidf("comment text must not be blank")
	}
	return nil
}

type requestBody struct {
	Description *string `json:"description"`
}

// validateCreateRequest requires a non-blank, bounded description.
func validateCreateRequest(body []byte) error {
	var rb requestBody
	if err := json.Unmarshal(body, &rb); err != nil {
		return invalidf("malformed request body")
	}
	if rb.Description == nil || strings.TrimSpace(*rb.Description) == "" {
		return invalidf("request description must not be blank")
	}
	if len(*rb.Description) > domain.MaxRequestDescriptionLen {
		return invalidf("request description exceeds %d characters", domain.MaxRequestDescriptionLen)
	}
	return nil
}

type bookingBody struct {
	ItemID *int64  `json:"itemId"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

// validateCreateBooking requires an item reference and a future, well-ordered
// interval.
func validateCreateBooking(body []byte, now time.Time) error {
	var b bookingBody
	if err := json.Unmarshal(body, &b); err != nil {
		return invalidf("malformed request body")
	}
	if b.ItemID == nil || *b.ItemID <= 0 {
		return invalidf("itemId must be a positive integer")
	}
	if b.Start == nil || b.End == nil {
		return invalidf("start and end are required")
	}
	start, err := time.Parse(wireTimeLayout, *b.Start)
	if err != nil {
		return invalidf("invalid start timestamp: %s", *b.Start)
	}
	end, err := time.Parse(wireTimeLayout, *b.End)
	if err != nil {
		return invalidf("invalid end timestamp: %s", *b.End)
	}
	if start.Before(now) {
		return invalidf("start must not be in the past")
	}
	if !end.After(start) {
		return invalidf("end must be after start")
	}
	return nil
}

// validateApproved requires the approved query parameter to be a boolean.
func validateApproved(r *http.Request) error {
	raw := r.URL.Query().Get("approved")
	if raw == "" {
		return invalidf("approved parameter is required")
	}
	if _, err := strconv.ParseBool(raw); err != nil {
		return invalidf("approved must be a boolean")
	}
	return nil
}
