package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// BookingService handles the booking lifecycle.
type BookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "booking").Logger(),
		now:         time.Now,
	}
}

// BookingDetails is a booking together with its booker and item.
type BookingDetails struct {
	*domain.Booking

	Booker *domain.User
	Item   *domain.Item
}

// CreateBookingInput contains the data needed to request a booking.
type CreateBookingInput struct {
	BookerID int64
	ItemID   int64
	Start    time.Time
	End      time.Time
}

// Create requests a new booking of an item. The booking starts in the
// WAITING status. Owners cannot book their own items.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*BookingDetails, error) {
	item, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.userRepo.GetByID(ctx, input.BookerID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, domain.ErrItemUnavailable
	}
	if item.IsOwnedBy(input.BookerID) {
		return nil, domain.ErrOwnItemBooking
	}
	if !input.End.After(input.Start) {
		return nil, domain.ErrInvalidPeriod
	}

	booking := domain.NewBooking(input.ItemID, input.BookerID, input.Start, input.End)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking requested")

	return &BookingDetails{Booking: booking, Booker: booker, Item: item}, nil
}

// Approve decides a WAITING booking. Only the item's owner may decide, and
// a booking is decided exactly once.
func (s *BookingService) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*BookingDetails, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, domain.ErrNotOwner
	}
	if booking.IsDecided() {
		return nil, domain.ErrAlreadyDecided
	}

	status := domain.StatusRejected
	if approved {
		status = domain.StatusApproved
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("status", string(status)).
		Msg("booking decided")

	booker, err := s.userRepo.GetByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &BookingDetails{Booking: booking, Booker: booker, Item: item}, nil
}

// Get returns a booking visible to userID. Only the booker and the item's
// owner may see a booking; anyone else gets domain.ErrBookingNotFound.
func (s *BookingService) Get(ctx context.Context, userID, bookingID int64) (*BookingDetails, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && !item.IsOwnedBy(userID) {
		return nil, domain.ErrBookingNotFound
	}

	booker, err := s.userRepo.GetByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &BookingDetails{Booking: booking, Booker: booker, Item: item}, nil
}

// ListForBooker returns the bookings made by userID in the given state
// bucket, most recent start first.
func (s *BookingService) ListForBooker(ctx context.Context, userID int64, state domain.BookingState, from, size int) ([]*BookingDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByBooker(ctx, userID, state, s.now().UTC(), repository.NewPage(from, size))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings)
}

// ListForOwner returns the bookings of items owned by userID in the given
// state bucket, most recent start first.
func (s *BookingService) ListForOwner(ctx context.Context, userID int64, state domain.BookingState, from, size int) ([]*BookingDetails, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByOwner(ctx, userID, state, s.now().UTC(), repository.NewPage(from, size))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings)
}

// enrich attaches booker and item to each booking, memoizing lookups so a
// page of bookings over the same item or booker costs one fetch each.
func (s *BookingService) enrich(ctx context.Context, bookings []*domain.Booking) ([]*BookingDetails, error) {
	users := make(map[int64]*domain.User)
	items := make(map[int64]*domain.Item)

	details := make([]*BookingDetails, len(bookings))
	for i, booking := range bookings {
		booker, ok := users[booking.BookerID]
		if !ok {
			var err error
			booker, err = s.userRepo.GetByID(ctx, booking.BookerID)
			if err != nil {
				return nil, err
			}
			users[booking.BookerID] = booker
		}

		item, ok := items[booking.ItemID]
		if !ok {
			var err error
			item, err = s.itemRepo.GetByID(ctx, booking.ItemID)
			if err != nil {
				return nil, err
			}
			items[booking.ItemID] = item
		}

		details[i] = &BookingDetails{Booking: booking, Booker: booker, Item: item}
	}
	return details, nil
}
