package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// ItemService handles item catalog operations, including comments.
type ItemService struct {
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
	bookingRepo repository.BookingRepository
	commentRepo repository.CommentRepository
	logger      zerolog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	bookingRepo repository.BookingRepository,
	commentRepo repository.CommentRepository,
	logger zerolog.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		logger:      logger.With().Str("service", "item").Logger(),
	}
}

// ItemDetails is an item together with its comments and, for the owner,
// the surrounding approved bookings.
type ItemDetails struct {
	*domain.Item

	// Comments on the item, oldest first.
	Comments []*domain.Comment

	// LastBooking is the most recent approved booking that has started.
	// Only populated for the item's owner.
	LastBooking *domain.Booking

	// NextBooking is the nearest approved booking yet to start.
	// Only populated for the item's owner.
	NextBooking *domain.Booking
}

// CreateItemInput contains the data needed to list a new item.
type CreateItemInput struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Create lists a new item owned by the given user, optionally linked to the
// item request it fulfills.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*ItemDetails, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ValidationError("item name must not be blank")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.ValidationError("item description must not be blank")
	}

	if _, err := s.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.requestRepo.GetByID(ctx, *input.RequestID); err != nil {
			return nil, err
		}
	}

	item := domain.NewItem(input.OwnerID, input.Name, input.Description, input.Available, input.RequestID)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("item_id", item.ID).
		Int64("owner_id", item.OwnerID).
		Msg("item created")

	return &ItemDetails{Item: item}, nil
}

// UpdateItemInput contains the partial fields for an item update.
// Nil or blank fields are left unchanged.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// Update applies a partial update to an item. Only the owner may update.
func (s *ItemService) Update(ctx context.Context, userID, itemID int64, input UpdateItemInput) (*ItemDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, domain.ErrNotOwner
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		item.Name = *input.Name
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		item.Description = *input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Msg("item updated")
	return &ItemDetails{Item: item, Comments: comments}, nil
}

// Get retrieves an item with its comments. When the viewer is the owner,
// the last and next approved bookings are attached as well.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID int64) (*ItemDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &ItemDetails{Item: item, Comments: comments}
	if !item.IsOwnedBy(viewerID) {
		return details, nil
	}

	now := time.Now().UTC()
	details.LastBooking, err = s.bookingRepo.FindLastForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	details.NextBooking, err = s.bookingRepo.FindNextForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}

	return details, nil
}

// ListForOwner returns the items owned by userID, ordered by item ID
// ascending, each annotated with comments and the last/next approved
// bookings. Bookings and comments are fetched in one batched query each.
func (s *ItemService) ListForOwner(ctx context.Context, userID int64, from, size int) ([]*ItemDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByOwner(ctx, userID, repository.NewPage(from, size))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	bookings, err := s.bookingRepo.ListApprovedForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	comments, err := s.commentRepo.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]*domain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := time.Now().UTC()
	details := make([]*ItemDetails, len(items))
	for i, item := range items {
		d := &ItemDetails{Item: item, Comments: commentsByItem[item.ID]}
		d.LastBooking, d.NextBooking = surroundingBookings(bookingsByItem[item.ID], now)
		details[i] = d
	}

	return details, nil
}

// surroundingBookings picks the last started and next upcoming booking from
// a start-ascending list of approved bookings.
func surroundingBookings(bookings []*domain.Booking, now time.Time) (last, next *domain.Booking) {
	for _, b := range bookings {
		if b.Start.Before(now) {
			last = b
		} else if b.Start.After(now) && next == nil {
			next = b
		}
	}
	return last, next
}

// Search returns available items matching text in their name or description,
// case-insensitively, each with its comments. A blank text returns an empty
// result without touching storage.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]*ItemDetails, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	items, err := s.itemRepo.Search(ctx, text, repository.NewPage(from, size))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	comments, err := s.commentRepo.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]*domain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	details := make([]*ItemDetails, len(items))
	for i, item := range items {
		details[i] = &ItemDetails{Item: item, Comments: commentsByItem[item.ID]}
	}

	return details, nil
}

// AddComment attaches feedback to an item. The author must have at least one
// booking of the item that already ended; the booking's status is not
// re-verified here, matching the platform's long-standing behavior.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ValidationError("comment text must not be blank")
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookingRepo.HasPastBooking(ctx, userID, itemID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrCommentNotAllowed
	}

	comment := domain.NewComment(userID, itemID, text)
	comment.AuthorName = author.Name
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("item_id", itemID).
		Int64("author_id", userID).
		Msg("comment added")

	return comment, nil
}
