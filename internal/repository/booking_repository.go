package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetix/backend/internal/booking"
	"github.com/cinetix/backend/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// BookingSummary is a booking row joined with everything the history screens
// show: the movie, the theater, the schedule and the seat labels.
type BookingSummary struct {
	model.Booking
	MovieTitle  string
	MoviePoster string
	TheaterName string
	ShowDate    string
	ShowTime    string
	Seats       []string
}

// BookingRepo reads booking history and performs the admin-only status
// transitions. Creating bookings goes through the booking workflow, not
// through this repo.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingSummaryQuery = "SELECT b.id, b.user_id, b.showtime_id, b.status, b.total_price, b.created_at, b.updated_at, " +
	"m.title, m.poster, t.name, s.`date`, s.`time` " +
	"FROM bookings b " +
	"JOIN showtimes s ON s.id = b.showtime_id " +
	"JOIN movies m ON m.id = s.movie_id " +
	"JOIN theaters t ON t.id = s.theater_id"

func (r *BookingRepo) seatLabels(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT s.`row`, s.number FROM booking_seats bs JOIN seats s ON s.id = bs.seat_id "+
			"WHERE bs.booking_id = ? ORDER BY s.`row`, s.number", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var (
			row    string
			number int
		)
		if err := rows.Scan(&row, &number); err != nil {
			return nil, err
		}
		labels = append(labels, booking.FormatSeatLabel(row, number))
	}
	return labels, rows.Err()
}

func (r *BookingRepo) collect(ctx context.Context, rows *sql.Rows) ([]BookingSummary, error) {
	defer rows.Close()

	summaries := make([]BookingSummary, 0)
	for rows.Next() {
		var b BookingSummary
		err := rows.Scan(&b.ID, &b.UserID, &b.ShowtimeID, &b.Status, &b.TotalPrice,
			&b.CreatedAt, &b.UpdatedAt,
			&b.MovieTitle, &b.MoviePoster, &b.TheaterName, &b.ShowDate, &b.ShowTime)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range summaries {
		labels, err := r.seatLabels(ctx, summaries[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].Seats = labels
	}
	return summaries, nil
}

// ListForUser returns the caller's bookings, newest first.
func (r *BookingRepo) ListForUser(ctx context.Context, userID string) ([]BookingSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSummaryQuery+" WHERE b.user_id = ? ORDER BY b.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// GetForUser returns one booking with seats, enforcing ownership:
// ErrBookingNotFound when the id is unknown, ErrForbidden when the booking
// belongs to someone else.
func (r *BookingRepo) GetForUser(ctx context.Context, userID, bookingID string) (*BookingSummary, error) {
	var b BookingSummary
	err := r.db.QueryRowContext(ctx, bookingSummaryQuery+" WHERE b.id = ?", bookingID).Scan(
		&b.ID, &b.UserID, &b.ShowtimeID, &b.Status, &b.TotalPrice,
		&b.CreatedAt, &b.UpdatedAt,
		&b.MovieTitle, &b.MoviePoster, &b.TheaterName, &b.ShowDate, &b.ShowTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	b.Seats, err = r.seatLabels(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListAll returns bookings across all users for the admin back-office,
// optionally filtered by status.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]BookingSummary, error) {
	query := bookingSummaryQuery
	var args []interface{}
	if status != "" {
		query += " WHERE b.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// Cancel marks a booking cancelled. Only admins reach this; customers have
// no cancellation path.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		booking.StatusCancelled, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
