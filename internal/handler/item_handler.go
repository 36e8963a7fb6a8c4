package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/service"
)

// ItemHandler serves the item catalog endpoints, including comments.
type ItemHandler struct {
	itemService *service.ItemService
	logger      zerolog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With().Str("handler", "item").Logger(),
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	details, err := h.itemService.Create(r.Context(), service.CreateItemInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(details))
}

// Update handles PATCH /items/{itemId}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	details, err := h.itemService.Update(r.Context(), userID, itemID, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(details))
}

// Get handles GET /items/{itemId}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.itemService.Get(r.Context(), itemID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(details))
}

// ListOwned handles GET /items.
func (h *ItemHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.itemService.ListForOwner(r.Context(), userID, from, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(details))
}

// Search handles GET /items/search.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	if _, err := sharerID(r); err != nil {
		writeError(w, err)
		return
	}
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.itemService.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(details))
}

// AddComment handles POST /items/{itemId}/comment.
func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.itemService.AddComment(r.Context(), userID, itemID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}
