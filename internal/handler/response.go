// Package handler provides the HTTP surface of the ShareIt server.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openshare/shareit/internal/domain"
)

// userIDHeader carries the acting user's ID on item, request and booking
// endpoints.
const userIDHeader = "X-Sharer-User-Id"

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to an HTTP status and writes the uniform error body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor resolves a domain error to its HTTP status. Booking a user's own
// item surfaces as not-found, and visibility failures reuse
// domain.ErrBookingNotFound, so both land on 404 here.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrOwnItemBooking):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrCommentNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sharerID extracts the acting user's ID from the request header.
func sharerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, domain.ValidationError("missing %s header", userIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid %s header: %s", userIDHeader, raw)
	}
	return id, nil
}

// pathID extracts a positive integer path parameter.
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid identifier: %s", raw)
	}
	return id, nil
}

// pagination parses the from/size query parameters, applying the platform
// defaults when absent.
func pagination(r *http.Request) (from, size int, err error) {
	from, size = 0, 10

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, domain.ValidationError("invalid from parameter: %s", raw)
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, domain.ValidationError("invalid size parameter: %s", raw)
		}
	}
	return from, size, nil
}

// decodeBody decodes the JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ValidationError("malformed request body: %v", err)
	}
	return nil
}
