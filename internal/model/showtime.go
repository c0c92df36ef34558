package model

import "time"

// Showtime mirrors the `showtimes` table: one screening of a movie in a
// theater at a given date and time, with a per-seat ticket price. Prices are
// whole rupiah, not cents.
type Showtime struct {
	ID        string    // showtimes.id
	MovieID   string    // showtimes.movie_id
	TheaterID string    // showtimes.theater_id
	Date      string    // showtimes.date (YYYY-MM-DD)
	Time      string    // showtimes.time (HH:MM)
	Price     int64     // showtimes.price (IDR)
	CreatedAt time.Time // showtimes.created_at
	UpdatedAt time.Time // showtimes.updated_at
}
