package booking

import "errors"

// Sentinel errors shared between the workflow and the store implementations.
// Handlers translate these into HTTP status codes; everything else surfaces
// as a wrapped error naming the step that failed.
var (
	// ErrShowtimeNotFound is returned by Store.GetShowtime when no showtime
	// row matches the id.
	ErrShowtimeNotFound = errors.New("showtime not found")

	// ErrSeatNotFound is returned by Store.FindSeat when no seat row matches
	// the (theater, row, number) triple. The workflow reacts by creating the
	// seat rather than failing.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrBookingNotFound is returned by Store.GetBooking when no booking row
	// matches the id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrIdentityRequired is returned when the workflow is invoked without a
	// current user id. Callers should redirect to sign-in.
	ErrIdentityRequired = errors.New("identity required")

	// ErrNoBookingID is returned when the store accepted the booking insert
	// but produced no generated id.
	ErrNoBookingID = errors.New("booking created but no id returned")

	// ErrNotBookingOwner is returned by Pay when the booking belongs to a
	// different user.
	ErrNotBookingOwner = errors.New("booking belongs to another user")
)

// Seat-selection validation errors, rejected before any write is attempted.
var (
	ErrNoSeats          = errors.New("at least one seat is required")
	ErrTooManySeats     = errors.New("at most 10 seats can be booked at once")
	ErrDuplicateSeat    = errors.New("duplicate seat in selection")
	ErrInvalidSeatLabel = errors.New("invalid seat label")
)

// Payment validation errors, rejected before any write is attempted.
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidCardNumber    = errors.New("invalid card number")
	ErrMissingCardholder    = errors.New("cardholder name is required")
	ErrInvalidExpiry        = errors.New("invalid expiry date")
	ErrInvalidCVV           = errors.New("invalid cvv")
)
