package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// bookingRepository implements repository.BookingRepository for PostgreSQL.
type bookingRepository struct {
	db *DB
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// Create persists a new booking and assigns its ID.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		booking.Start,
		booking.End,
		booking.ItemID,
		booking.BookerID,
		string(booking.Status),
	).Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID.
func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE id = $1
	`

	booking := &domain.Booking{}
	var status string
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.ItemID,
		&booking.BookerID,
		&status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}

	booking.Status = domain.BookingStatus(status)
	return booking, nil
}

// UpdateStatus sets the status of a booking.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

// stateClause returns the WHERE fragment and arguments for a state bucket,
// numbering placeholders from next. An unrecognized state matches no rows.
func stateClause(state domain.BookingState, now time.Time, next int) (string, []interface{}) {
	switch state {
	case domain.StateAll:
		return "", nil
	case domain.StateCurrent:
		return fmt.Sprintf("AND b.start_date <= $%d AND b.end_date > $%d", next, next+1),
			[]interface{}{now, now}
	case domain.StatePast:
		return fmt.Sprintf("AND b.end_date < $%d", next), []interface{}{now}
	case domain.StateFuture:
		return fmt.Sprintf("AND b.start_date > $%d", next), []interface{}{now}
	case domain.StateWaiting:
		return fmt.Sprintf("AND b.status = $%d", next), []interface{}{string(domain.StatusWaiting)}
	case domain.StateRejected:
		return fmt.Sprintf("AND b.status = $%d", next), []interface{}{string(domain.StatusRejected)}
	default:
		return "AND FALSE", nil
	}
}

// ListByBooker returns bookings made by bookerID in the given state bucket,
// ordered by start descending.
func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	clause, clauseArgs := stateClause(state, now, 2)
	query := fmt.Sprintf(`
		SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
		FROM bookings b
		WHERE b.booker_id = $1 %s
		ORDER BY b.start_date DESC
		LIMIT $%d OFFSET $%d
	`, clause, 2+len(clauseArgs), 3+len(clauseArgs))

	args := append([]interface{}{bookerID}, clauseArgs...)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListByOwner returns bookings on items owned by ownerID in the given state
// bucket, ordered by start descending.
func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	clause, clauseArgs := stateClause(state, now, 2)
	query := fmt.Sprintf(`
		SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 %s
		ORDER BY b.start_date DESC
		LIMIT $%d OFFSET $%d
	`, clause, 2+len(clauseArgs), 3+len(clauseArgs))

	args := append([]interface{}{ownerID}, clauseArgs...)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindLastForItem returns the latest APPROVED booking of the item whose start
// is at or before now, or nil when there is none.
func (r *bookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = $1 AND status = $2 AND start_date <= $3
		ORDER BY start_date DESC
		LIMIT 1
	`

	return r.findOne(ctx, query, itemID, string(domain.StatusApproved), now)
}

// FindNextForItem returns the earliest APPROVED booking of the item whose
// start is after now, or nil when there is none.
func (r *bookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = $1 AND status = $2 AND start_date > $3
		ORDER BY start_date
		LIMIT 1
	`

	return r.findOne(ctx, query, itemID, string(domain.StatusApproved), now)
}

// findOne runs a single-booking query, mapping no rows to (nil, nil).
func (r *bookingRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var status string
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.ItemID,
		&booking.BookerID,
		&status,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	booking.Status = domain.BookingStatus(status)
	return booking, nil
}

// ListApprovedForItems returns all APPROVED bookings of the given items,
// ordered by start ascending.
func (r *bookingRepository) ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE status = $1 AND item_id = ANY($2)
		ORDER BY start_date
	`

	rows, err := r.db.Pool.Query(ctx, query, string(domain.StatusApproved), itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved bookings for items: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// HasPastBooking reports whether bookerID has a booking of the item that
// ended strictly before now, regardless of status.
func (r *bookingRepository) HasPastBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booker_id = $1 AND item_id = $2 AND end_date < $3
		)
	`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, bookerID, itemID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check past bookings: %w", err)
	}

	return exists, nil
}

// collectBookings drains rows into a slice of bookings.
func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking := &domain.Booking{}
		var status string
		err := rows.Scan(
			&booking.ID,
			&booking.Start,
			&booking.End,
			&booking.ItemID,
			&booking.BookerID,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		booking.Status = domain.BookingStatus(status)
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// Ensure bookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*bookingRepository)(nil)
