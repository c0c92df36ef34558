package model

import "time"

// Payment mirrors the `payments` table: one row per successful payment
// attempt against a booking. This service only ever writes status
// "completed"; the pending/failed values exist in the schema but are never
// produced here.
type Payment struct {
	ID        string    // payments.id
	BookingID string    // payments.booking_id
	Amount    int64     // payments.amount (IDR)
	Method    string    // payments.payment_method: credit_card | debit_card | e_wallet
	Status    string    // payments.status
	CreatedAt time.Time // payments.created_at
	UpdatedAt time.Time // payments.updated_at
}
