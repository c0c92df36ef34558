package model

import "time"

// Theater mirrors the `theaters` table. Facilities is a JSON array column
// ("Dolby Atmos", "4DX", ...).
type Theater struct {
	ID         string    // theaters.id
	Name       string    // theaters.name
	Address    string    // theaters.address
	City       string    // theaters.city
	Image      string    // theaters.image (image URL)
	Facilities []string  // theaters.facilities (JSON array)
	CreatedAt  time.Time // theaters.created_at
	UpdatedAt  time.Time // theaters.updated_at
}
