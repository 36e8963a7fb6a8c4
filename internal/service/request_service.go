package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// RequestService handles the item request board.
type RequestService struct {
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "request").Logger(),
	}
}

// RequestDetails is an item request together with the items fulfilling it.
type RequestDetails struct {
	*domain.ItemRequest

	// Items that reference this request as their fulfillment source.
	Items []*domain.Item
}

// Create posts a new item request for the given user.
func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*RequestDetails, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ValidationError("request description must not be blank")
	}
	if len(description) > domain.MaxRequestDescriptionLen {
		return nil, domain.ValidationError("request description exceeds %d characters", domain.MaxRequestDescriptionLen)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req := domain.NewItemRequest(userID, description)
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("request_id", req.ID).
		Int64("requester_id", userID).
		Msg("item request created")

	return &RequestDetails{ItemRequest: req, Items: []*domain.Item{}}, nil
}

// ListForRequester returns all requests authored by userID, newest first,
// each annotated with the items fulfilling it.
func (s *RequestService) ListForRequester(ctx context.Context, userID int64) ([]*RequestDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, requests)
}

// ListOthers returns requests posted by other users, newest first, paginated.
func (s *RequestService) ListOthers(ctx context.Context, userID int64, from, size int) ([]*RequestDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListOthers(ctx, userID, repository.NewPage(from, size))
	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, requests)
}

// GetByID returns one request with its fulfilling items.
// The viewer must be a known user.
func (s *RequestService) GetByID(ctx context.Context, requestID, viewerID int64) (*RequestDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByRequestIDs(ctx, []int64{requestID})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Item{}
	}

	return &RequestDetails{ItemRequest: req, Items: items}, nil
}

// annotate attaches fulfilling items to each request using one batched query
// grouped by request ID.
func (s *RequestService) annotate(ctx context.Context, requests []*domain.ItemRequest) ([]*RequestDetails, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	requestIDs := make([]int64, len(requests))
	for i, req := range requests {
		requestIDs[i] = req.ID
	}

	items, err := s.itemRepo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]*domain.Item)
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], item)
	}

	details := make([]*RequestDetails, len(requests))
	for i, req := range requests {
		reqItems := itemsByRequest[req.ID]
		if reqItems == nil {
			reqItems = []*domain.Item{}
		}
		details[i] = &RequestDetails{ItemRequest: req, Items: reqItems}
	}

	return details, nil
}
