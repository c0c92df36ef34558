package booking

import (
	"context"
	"errors"
	"fmt"
)

// Service coordinates the booking workflow against a Store. It performs no
// locking and no transactions: the availability snapshot in TakenSeats and
// the writes in CreateBooking are separate store calls, so two users who both
// read a free seat can both book it. Closing that window is a schema concern
// (a uniqueness constraint at the data store), not something this service
// attempts.
type Service struct {
	store Store
}

// NewService returns a Service backed by the given store.
func NewService(store Store) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	return &Service{store: store}
}

// TakenSeats returns the labels of all seats attached to a confirmed booking
// for the showtime, formatted "{row}{number}". Seats held only by pending
// bookings are not reported: a seat counts as taken only once a booking has
// been paid. With no confirmed bookings the result is empty and every seat is
// offered.
func (s *Service) TakenSeats(ctx context.Context, showtimeID string) ([]string, error) {
	ids, err := s.store.ConfirmedBookingIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed bookings: %w", err)
	}
	if len(ids) == 0 {
		return []string{}, nil
	}
	refs, err := s.store.SeatRefsForBookings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}
	labels := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		label := FormatSeatLabel(ref.Row, ref.Number)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels, nil
}

// CreateBookingInput is a confirmed seat selection for one showtime.
type CreateBookingInput struct {
	ShowtimeID string
	Seats      []string
}

// CreateBooking records a booking attempt and its seat assignments. Steps run
// sequentially and each failure aborts the remainder with an error naming the
// failing step; writes already made are left in place, so an aborted run can
// leave a pending booking with some of its seats linked.
//
// Steps: ensure a user row exists for the identity (creating one with role
// "user" from the identity's email/name when absent), insert the booking in
// "pending" state with total_price = len(seats) * showtime price, then for
// each seat label in order resolve-or-create the seat row and link it. The
// returned booking is ready for hand-off to Pay.
func (s *Service) CreateBooking(ctx context.Context, id Identity, in CreateBookingInput) (*Booking, error) {
	if id.ID == "" {
		return nil, ErrIdentityRequired
	}
	if err := validateSeats(in.Seats); err != nil {
		return nil, err
	}

	show, err := s.store.GetShowtime(ctx, in.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("load showtime: %w", err)
	}

	exists, err := s.store.UserExists(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		name := id.FullName
		if name == "" {
			name = "User"
		}
		if err := s.store.CreateUser(ctx, id.ID, id.Email, name, "user"); err != nil {
			return nil, fmt.Errorf("create user record: %w", err)
		}
	}

	b := &Booking{
		UserID:     id.ID,
		ShowtimeID: show.ID,
		TotalPrice: int64(len(in.Seats)) * show.Price,
		Status:     StatusPending,
	}
	bookingID, err := s.store.CreateBooking(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if bookingID == "" {
		return nil, ErrNoBookingID
	}
	b.ID = bookingID

	// Seats are linked one at a time, in selection order, so a failure is
	// attributable to a specific label. No compensating delete is issued for
	// the booking or for seats already linked.
	for _, label := range in.Seats {
		if err := s.attachSeat(ctx, bookingID, show.TheaterID, label); err != nil {
			return nil, fmt.Errorf("seat %s: %w", label, err)
		}
	}
	return b, nil
}

// attachSeat resolves a seat label to a seat row, creating the row when the
// label has no seat yet, and links it to the booking.
func (s *Service) attachSeat(ctx context.Context, bookingID, theaterID, label string) error {
	row, number, err := ParseSeatLabel(label)
	if err != nil {
		return err
	}
	seatID, err := s.store.FindSeat(ctx, theaterID, row, number)
	switch {
	case err == nil:
	case errors.Is(err, ErrSeatNotFound):
		created, createErr := s.store.CreateSeat(ctx, &Seat{
			TheaterID: theaterID,
			Row:       row,
			Number:    number,
			Type:      "standard",
		})
		if createErr != nil {
			return fmt.Errorf("create seat: %w", createErr)
		}
		seatID = created
	default:
		return fmt.Errorf("find seat: %w", err)
	}
	if err := s.store.CreateBookingSeat(ctx, bookingID, seatID); err != nil {
		return fmt.Errorf("link seat: %w", err)
	}
	return nil
}

func validateSeats(seats []string) error {
	if len(seats) == 0 {
		return ErrNoSeats
	}
	if len(seats) > MaxTicketCount {
		return ErrTooManySeats
	}
	seen := make(map[string]struct{}, len(seats))
	for _, label := range seats {
		if _, _, err := ParseSeatLabel(label); err != nil {
			return err
		}
		if _, ok := seen[label]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSeat, label)
		}
		seen[label] = struct{}{}
	}
	return nil
}
