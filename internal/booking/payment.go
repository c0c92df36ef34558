package booking

import (
	"context"
	"fmt"
	"strings"
)

// PaymentInput is the payment form submitted for a booking. Card fields are
// only consulted for card-based methods; e_wallet requires nothing.
type PaymentInput struct {
	Method     string
	CardNumber string
	CardName   string
	Expiry     string
	CVV        string
}

// Validate applies the same field checks the payment form performs: card
// number of at least 16 characters, a cardholder name, an expiry containing
// a "/" separator and a CVV of at least 3 characters. No check verifies the
// card against anything real.
func (in PaymentInput) Validate() error {
	switch in.Method {
	case MethodCreditCard, MethodDebitCard:
	case MethodEWallet:
		return nil
	default:
		return ErrInvalidPaymentMethod
	}
	if len(strings.TrimSpace(in.CardNumber)) < 16 {
		return ErrInvalidCardNumber
	}
	if strings.TrimSpace(in.CardName) == "" {
		return ErrMissingCardholder
	}
	if !strings.Contains(in.Expiry, "/") {
		return ErrInvalidExpiry
	}
	if len(strings.TrimSpace(in.CVV)) < 3 {
		return ErrInvalidCVV
	}
	return nil
}

// Pay simulates settlement for a booking: it inserts a payment row with
// status "completed" and then flips the booking to "confirmed". Neither
// write is conditional on the other, so a failed status update leaves a
// completed payment against a still-pending booking; the service does not
// reconcile that state. No failed payment status is ever recorded.
func (s *Service) Pay(ctx context.Context, userID, bookingID string, in PaymentInput) (*Payment, error) {
	if userID == "" {
		return nil, ErrIdentityRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	p := &Payment{
		BookingID: b.ID,
		Amount:    b.TotalPrice,
		Method:    in.Method,
		Status:    PaymentCompleted,
	}
	if err := s.store.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if err := s.store.UpdateBookingStatus(ctx, b.ID, StatusConfirmed); err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	b.Status = StatusConfirmed
	return p, nil
}
