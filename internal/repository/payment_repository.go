package repository

import (
	"context"
	"database/sql"

	"github.com/cinetix/backend/internal/model"
)

// PaymentRecord is a payment row joined with the paying user, as listed in
// the admin back-office.
type PaymentRecord struct {
	model.Payment
	UserEmail string
}

// PaymentRepo reads payment history. Payments are only ever written by the
// booking workflow.
type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// ListAll returns all payments, newest first, optionally filtered by method.
func (r *PaymentRepo) ListAll(ctx context.Context, method string) ([]PaymentRecord, error) {
	query := "SELECT p.id, p.booking_id, p.amount, p.payment_method, p.status, p.created_at, u.email " +
		"FROM payments p " +
		"JOIN bookings b ON b.id = p.booking_id " +
		"JOIN users u ON u.id = b.user_id"
	var args []interface{}
	if method != "" {
		query += " WHERE p.payment_method = ?"
		args = append(args, method)
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentRecord, 0)
	for rows.Next() {
		var p PaymentRecord
		err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status,
			&p.CreatedAt, &p.UserEmail)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// ForBooking returns the payments recorded against one booking.
func (r *PaymentRepo) ForBooking(ctx context.Context, bookingID string) ([]PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, booking_id, amount, payment_method, status, created_at FROM payments "+
			"WHERE booking_id = ? ORDER BY created_at", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentRecord, 0)
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
