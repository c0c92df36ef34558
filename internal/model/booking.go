package model

import "time"

// Booking records a user's ticket purchase attempt for one showtime. It is
// created in "pending" state, moves to "confirmed" after a successful
// payment, and only an admin ever sets "cancelled".
//
// Fields:
//  ID         – UUID primary key.
//  UserID     – user who made the booking.
//  ShowtimeID – showtime being booked.
//  TotalPrice – seats selected × showtime price, in IDR.
//  Status     – pending | confirmed | cancelled.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
	ID         string    // bookings.id
	UserID     string    // bookings.user_id
	ShowtimeID string    // bookings.showtime_id
	TotalPrice int64     // bookings.total_price
	Status     string    // bookings.status
	CreatedAt  time.Time // bookings.created_at
	UpdatedAt  time.Time // bookings.updated_at
}

// BookingSeat links a booking to one seat. One row per selected seat.
type BookingSeat struct {
	ID        string    // booking_seats.id
	BookingID string    // booking_seats.booking_id
	SeatID    string    // booking_seats.seat_id
	CreatedAt time.Time // booking_seats.created_at
}
