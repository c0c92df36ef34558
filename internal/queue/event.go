// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a payment confirms a booking. It
// carries enough context for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   string   `json:"booking_id"`
	UserID      string   `json:"user_id"`
	ShowtimeID  string   `json:"showtime_id"`
	MovieTitle  string   `json:"movie_title"`
	TheaterName string   `json:"theater_name"`
	ShowDate    string   `json:"show_date"`
	ShowTime    string   `json:"show_time"`
	SeatLabels  []string `json:"seats"`
	TotalPrice  int64    `json:"total_price"`
	PaidAt      string   `json:"paid_at"`
}
