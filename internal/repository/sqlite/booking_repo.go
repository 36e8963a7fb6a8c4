package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// Timestamps are stored as RFC3339 UTC strings; the fixed format makes
// lexicographic comparison equivalent to temporal comparison.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// bookingRepository implements repository.BookingRepository for SQLite.
type bookingRepository struct {
	db *DB
}

// NewBookingRepository creates a new SQLite booking repository.
func NewBookingRepository(db *DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// Create persists a new booking and assigns its ID.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		formatTime(booking.Start),
		formatTime(booking.End),
		booking.ItemID,
		booking.BookerID,
		string(booking.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	booking.ID = id

	return nil
}

// GetByID retrieves a booking by ID.
func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE id = ?
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}

	return booking, nil
}

// UpdateStatus sets the status of a booking.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

// stateClause returns the WHERE fragment and arguments for a state bucket.
// An unrecognized state matches no rows.
func stateClause(state domain.BookingState, now time.Time) (string, []interface{}) {
	ts := formatTime(now)
	switch state {
	case domain.StateAll:
		return "", nil
	case domain.StateCurrent:
		return "AND b.start_date <= ? AND b.end_date > ?", []interface{}{ts, ts}
	case domain.StatePast:
		return "AND b.end_date < ?", []interface{}{ts}
	case domain.StateFuture:
		return "AND b.start_date > ?", []interface{}{ts}
	case domain.StateWaiting:
		return "AND b.status = ?", []interface{}{string(domain.StatusWaiting)}
	case domain.StateRejected:
		return "AND b.status = ?", []interface{}{string(domain.StatusRejected)}
	default:
		return "AND 1 = 0", nil
	}
}

// ListByBooker returns bookings made by bookerID in the given state bucket,
// ordered by start descending.
func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	clause, clauseArgs := stateClause(state, now)
	query := fmt.Sprintf(`
		SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
		FROM bookings b
		WHERE b.booker_id = ? %s
		ORDER BY b.start_date DESC
		LIMIT ? OFFSET ?
	`, clause)

	args := append([]interface{}{bookerID}, clauseArgs...)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListByOwner returns bookings on items owned by ownerID in the given state
// bucket, ordered by start descending.
func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time, page repository.Page) ([]*domain.Booking, error) {
	clause, clauseArgs := stateClause(state, now)
	query := fmt.Sprintf(`
		SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = ? %s
		ORDER BY b.start_date DESC
		LIMIT ? OFFSET ?
	`, clause)

	args := append([]interface{}{ownerID}, clauseArgs...)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
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
		WHERE item_id = ? AND status = ? AND start_date <= ?
		ORDER BY start_date DESC
		LIMIT 1
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query,
		itemID, string(domain.StatusApproved), formatTime(now)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}

	return booking, nil
}

// FindNextForItem returns the earliest APPROVED booking of the item whose
// start is after now, or nil when there is none.
func (r *bookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	query := `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE item_id = ? AND status = ? AND start_date > ?
		ORDER BY start_date
		LIMIT 1
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query,
		itemID, string(domain.StatusApproved), formatTime(now)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}

	return booking, nil
}

// ListApprovedForItems returns all APPROVED bookings of the given items,
// ordered by start ascending.
func (r *bookingRepository) ListApprovedForItems(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	placeholders := ""
	args := make([]interface{}, 0, len(itemIDs)+1)
	args = append(args, string(domain.StatusApproved))
	for i, id := range itemIDs {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE status = ? AND item_id IN (%s)
		ORDER BY start_date
	`, placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
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
		SELECT COUNT(*)
		FROM bookings
		WHERE booker_id = ? AND item_id = ? AND end_date < ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, bookerID, itemID, formatTime(now)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check past bookings: %w", err)
	}

	return count > 0, nil
}

// scanBooking scans one booking row.
func scanBooking(row rowScanner) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var start, end, status string

	err := row.Scan(
		&booking.ID,
		&start,
		&end,
		&booking.ItemID,
		&booking.BookerID,
		&status,
	)
	if err != nil {
		return nil, err
	}

	booking.Start, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking start %q: %w", start, err)
	}
	booking.End, err = time.Parse(time.RFC3339, end)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking end %q: %w", end, err)
	}
	booking.Status = domain.BookingStatus(status)

	return booking, nil
}

// collectBookings drains rows into a slice of bookings.
func collectBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// Ensure bookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*bookingRepository)(nil)
