package model

import "time"

// Movie mirrors the `movies` table. Genre and Cast are stored as JSON arrays
// in the database and unpacked by the repository layer.
type Movie struct {
	ID           string    // movies.id
	Title        string    // movies.title
	Description  string    // movies.description
	Poster       string    // movies.poster (image URL)
	Backdrop     string    // movies.backdrop (image URL)
	Rating       string    // movies.rating, e.g. "SU", "R13+"
	Duration     string    // movies.duration, e.g. "2h 15m"
	ReleaseDate  string    // movies.release_date (YYYY-MM-DD)
	IsNowShowing bool      // movies.is_now_showing
	IsComingSoon bool      // movies.is_coming_soon
	Genre        []string  // movies.genre (JSON array)
	Director     string    // movies.director
	Cast         []string  // movies.cast (JSON array)
	CreatedAt    time.Time // movies.created_at
	UpdatedAt    time.Time // movies.updated_at
}
