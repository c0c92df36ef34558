package model

import "time"

// User represents an application user record as stored in the `users` table.
// IDs are UUID strings issued either by this service at registration or by
// the booking workflow when it materializes a user row for an identity that
// has no record yet.
//
// Fields:
//  ID           – UUID primary key.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name shown on bookings.
//  Role         – "user" or "admin".
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
