package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/service"
)

// RequestHandler serves the item request board endpoints.
type RequestHandler struct {
	requestService *service.RequestService
	logger         zerolog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService *service.RequestService, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logger:         logger.With().Str("handler", "request").Logger(),
	}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createItemRequestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	details, err := h.requestService.Create(r.Context(), userID, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestResponse(details))
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.requestService.ListForRequester(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponses(details))
}

// ListOthers handles GET /requests/all.
func (h *RequestHandler) ListOthers(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.requestService.ListOthers(r.Context(), userID, from, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponses(details))
}

// Get handles GET /requests/{requestId}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	requestID, err := pathID(chi.URLParam(r, "requestId"))
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.requestService.GetByID(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(details))
}
