package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cinetix/backend/internal/booking"
	"github.com/cinetix/backend/internal/model"
)

// SQLStore is the MySQL-backed implementation of booking.Store. Every method
// is a single-row statement; the workflow layering on top never asks for a
// transaction.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore constructs a SQLStore with the given DB handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

var _ booking.Store = (*SQLStore)(nil)

func (s *SQLStore) GetShowtime(ctx context.Context, id string) (*booking.Showtime, error) {
	var st booking.Showtime
	err := s.db.QueryRowContext(ctx,
		"SELECT id, movie_id, theater_id, `date`, `time`, price FROM showtimes WHERE id = ? LIMIT 1",
		id).Scan(&st.ID, &st.MovieID, &st.TheaterID, &st.Date, &st.Time, &st.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *SQLStore) ConfirmedBookingIDs(ctx context.Context, showtimeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM bookings WHERE showtime_id = ? AND status = ?",
		showtimeID, booking.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLStore) SeatRefsForBookings(ctx context.Context, bookingIDs []string) ([]booking.SeatRef, error) {
	if len(bookingIDs) == 0 {
		return []booking.SeatRef{}, nil
	}
	placeholders := strings.Repeat("?,", len(bookingIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(bookingIDs))
	for i, id := range bookingIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT st.`row`, st.number FROM booking_seats bs JOIN seats st ON st.id = bs.seat_id "+
			"WHERE bs.booking_id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]booking.SeatRef, 0)
	for rows.Next() {
		var ref booking.SeatRef
		if err := rows.Scan(&ref.Row, &ref.Number); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *SQLStore) UserExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, id, email, fullName, role string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, full_name, role) VALUES (?,?,?,?,?)",
		id, email, "", fullName, role)
	return err
}

func (s *SQLStore) CreateBooking(ctx context.Context, b *booking.Booking) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bookings (id, user_id, showtime_id, total_price, status) VALUES (?,?,?,?,?)",
		id, b.UserID, b.ShowtimeID, b.TotalPrice, b.Status)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) FindSeat(ctx context.Context, theaterID, row string, number int) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM seats WHERE theater_id = ? AND `row` = ? AND number = ? LIMIT 1",
		theaterID, row, number).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", booking.ErrSeatNotFound
		}
		return "", err
	}
	return id, nil
}

func (s *SQLStore) CreateSeat(ctx context.Context, seat *booking.Seat) (string, error) {
	row := model.Seat{
		ID:        uuid.NewString(),
		TheaterID: seat.TheaterID,
		Row:       seat.Row,
		Number:    seat.Number,
		Type:      seat.Type,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO seats (id, theater_id, `row`, number, `type`) VALUES (?,?,?,?,?)",
		row.ID, row.TheaterID, row.Row, row.Number, row.Type)
	if err != nil {
		return "", err
	}
	return row.ID, nil
}

func (s *SQLStore) CreateBookingSeat(ctx context.Context, bookingID, seatID string) error {
	link := model.BookingSeat{ID: uuid.NewString(), BookingID: bookingID, SeatID: seatID}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO booking_seats (id, booking_id, seat_id) VALUES (?,?,?)",
		link.ID, link.BookingID, link.SeatID)
	return err
}

func (s *SQLStore) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	var b booking.Booking
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, showtime_id, total_price, status FROM bookings WHERE id = ? LIMIT 1",
		id).Scan(&b.ID, &b.UserID, &b.ShowtimeID, &b.TotalPrice, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *SQLStore) CreatePayment(ctx context.Context, p *booking.Payment) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (id, booking_id, amount, payment_method, status) VALUES (?,?,?,?,?)",
		uuid.NewString(), p.BookingID, p.Amount, p.Method, p.Status)
	return err
}

func (s *SQLStore) UpdateBookingStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	return err
}
