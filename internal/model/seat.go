package model

import "time"

// Seat represents a physical seat within a theater, identified by its row
// letter and number. Seats are provisioned lazily: a row is inserted the
// first time a booking selects that label.
type Seat struct {
	ID        string    // seats.id
	TheaterID string    // seats.theater_id
	Row       string    // seats.row (single letter, e.g. "A")
	Number    int       // seats.number (1-based position in the row)
	Type      string    // seats.type: standard | premium | vip
	CreatedAt time.Time // seats.created_at
	UpdatedAt time.Time // seats.updated_at
}
