package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/service"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	bookingService *service.BookingService
	logger         zerolog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger.With().Str("handler", "booking").Logger(),
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	details, err := h.bookingService.Create(r.Context(), service.CreateBookingInput{
		BookerID: userID,
		ItemID:   req.ItemID,
		Start:    time.Time(req.Start),
		End:      time.Time(req.End),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(details))
}

// Approve handles PATCH /bookings/{bookingId}.
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(chi.URLParam(r, "bookingId"))
	if err != nil {
		writeError(w, err)
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, domain.ValidationError("invalid approved parameter"))
		return
	}

	details, err := h.bookingService.Approve(r.Context(), userID, bookingID, approved)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(details))
}

// Get handles GET /bookings/{bookingId}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookingID, err := pathID(chi.URLParam(r, "bookingId"))
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.bookingService.Get(r.Context(), userID, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponse(details))
}

// ListForBooker handles GET /bookings.
func (h *BookingHandler) ListForBooker(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookingService.ListForBooker)
}

// ListForOwner handles GET /bookings/owner.
func (h *BookingHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.bookingService.ListForOwner)
}

// list shares the query plumbing of the two booking list endpoints.
// An unrecognized state passes through and matches nothing, yielding an
// empty list rather than an error.
func (h *BookingHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, userID int64, state domain.BookingState, from, size int) ([]*service.BookingDetails, error),
) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	raw := r.URL.Query().Get("state")
	if raw == "" {
		raw = string(domain.StateAll)
	}
	state, _ := domain.ParseBookingState(raw)
	if state == "" {
		state = domain.BookingState(raw)
	}

	details, err := fetch(r.Context(), userID, state, from, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookingResponses(details))
}
