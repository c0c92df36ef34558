// Package booking implements the seat-booking workflow: seat availability
// resolution, seat selection rules, booking creation with per-seat
// find-or-create, and the simulated payment stage. The package talks to the
// database through the Store interface so the workflow can be exercised
// against an in-memory store in tests. None of the multi-step writes are
// wrapped in a transaction; each row write is assumed independently atomic
// and a failure mid-workflow leaves earlier writes in place.
package booking

import "context"

// Booking status values as stored in bookings.status.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Payment methods accepted by the payment stage.
const (
	MethodCreditCard = "credit_card"
	MethodDebitCard  = "debit_card"
	MethodEWallet    = "e_wallet"
)

// PaymentCompleted is the only payment status this service ever writes.
const PaymentCompleted = "completed"

// Identity carries what the identity provider knows about the current user.
// ID must be non-empty; Email and FullName are fallbacks used when the user
// row has to be created on first booking.
type Identity struct {
	ID       string
	Email    string
	FullName string
}

// Showtime is the read-only slice of a showtime the workflow needs: which
// theater it plays in and the per-seat price.
type Showtime struct {
	ID        string
	MovieID   string
	TheaterID string
	Date      string
	Time      string
	Price     int64
}

// Booking mirrors a row of the bookings table.
type Booking struct {
	ID         string
	UserID     string
	ShowtimeID string
	TotalPrice int64
	Status     string
}

// Seat mirrors a row of the seats table. Seats are created lazily when a
// selected label has no row yet, always with type "standard".
type Seat struct {
	ID        string
	TheaterID string
	Row       string
	Number    int
	Type      string
}

// SeatRef is the (row, number) pair of a booked seat, used to rebuild the
// "{row}{number}" labels of taken seats.
type SeatRef struct {
	Row    string
	Number int
}

// Payment mirrors a row of the payments table.
type Payment struct {
	ID        string
	BookingID string
	Amount    int64
	Method    string
	Status    string
}

// Store is the row-oriented persistence contract the workflow runs against.
// Implementations expose single-row reads and writes only; there is no
// multi-row transaction primitive, which is exactly the guarantee level the
// workflow is designed (and tested) around.
type Store interface {
	// GetShowtime returns the showtime or ErrShowtimeNotFound.
	GetShowtime(ctx context.Context, id string) (*Showtime, error)

	// ConfirmedBookingIDs returns the ids of all bookings for the showtime
	// whose status is "confirmed". Pending and cancelled bookings are ignored.
	ConfirmedBookingIDs(ctx context.Context, showtimeID string) ([]string, error)

	// SeatRefsForBookings returns the seats linked to any of the given
	// bookings. An empty id set returns an empty slice.
	SeatRefsForBookings(ctx context.Context, bookingIDs []string) ([]SeatRef, error)

	// UserExists reports whether a user row with the given id exists.
	UserExists(ctx context.Context, id string) (bool, error)

	// CreateUser inserts a user row with the given id, email, full name and
	// role.
	CreateUser(ctx context.Context, id, email, fullName, role string) error

	// CreateBooking inserts a booking row and returns its generated id.
	CreateBooking(ctx context.Context, b *Booking) (string, error)

	// FindSeat looks up a seat by (theater, row, number) and returns its id,
	// or ErrSeatNotFound when no such row exists.
	FindSeat(ctx context.Context, theaterID, row string, number int) (string, error)

	// CreateSeat inserts a seat row and returns its generated id.
	CreateSeat(ctx context.Context, s *Seat) (string, error)

	// CreateBookingSeat links a booking to a seat.
	CreateBookingSeat(ctx context.Context, bookingID, seatID string) error

	// GetBooking returns the booking or ErrBookingNotFound.
	GetBooking(ctx context.Context, id string) (*Booking, error)

	// CreatePayment inserts a payment row.
	CreatePayment(ctx context.Context, p *Payment) error

	// UpdateBookingStatus sets bookings.status for the given booking.
	UpdateBookingStatus(ctx context.Context, id, status string) error
}
