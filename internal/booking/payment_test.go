package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentInputValidate(t *testing.T) {
	valid := PaymentInput{
		Method:     MethodCreditCard,
		CardNumber: "4111111111111111",
		CardName:   "Dina",
		Expiry:     "12/27",
		CVV:        "123",
	}

	cases := []struct {
		name   string
		mutate func(*PaymentInput)
		want   error
	}{
		{"credit card ok", func(in *PaymentInput) {}, nil},
		{"debit card ok", func(in *PaymentInput) { in.Method = MethodDebitCard }, nil},
		{"e-wallet needs no fields", func(in *PaymentInput) { *in = PaymentInput{Method: MethodEWallet} }, nil},
		{"unknown method", func(in *PaymentInput) { in.Method = "cash" }, ErrInvalidPaymentMethod},
		{"short card number", func(in *PaymentInput) { in.CardNumber = "4111" }, ErrInvalidCardNumber},
		{"blank cardholder", func(in *PaymentInput) { in.CardName = "  " }, ErrMissingCardholder},
		{"expiry without separator", func(in *PaymentInput) { in.Expiry = "1227" }, ErrInvalidExpiry},
		{"short cvv", func(in *PaymentInput) { in.CVV = "12" }, ErrInvalidCVV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestPayRejectsForeignBooking(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	_, err = svc.Pay(ctx, "u2", b.ID, PaymentInput{Method: MethodEWallet})
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestPayUnknownBooking(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	_, err := svc.Pay(context.Background(), "u1", "nope", PaymentInput{Method: MethodEWallet})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestPayValidatesBeforeWriting(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	_, err = svc.Pay(ctx, "u1", b.ID, PaymentInput{Method: MethodCreditCard, CardNumber: "1234"})
	assert.ErrorIs(t, err, ErrInvalidCardNumber)
	assert.Empty(t, store.payments, "validation failures must not write a payment")
}

func TestPayHalfFailureLeavesDivergentState(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	store.statusErr = errors.New("update failed")
	_, err = svc.Pay(ctx, "u1", b.ID, PaymentInput{Method: MethodEWallet})
	require.Error(t, err)

	// the exact inconsistent outcome: a completed payment against a booking
	// still in pending, with nothing reconciling the two
	require.Len(t, store.payments, 1)
	assert.Equal(t, PaymentCompleted, store.payments[0].Status)
	got, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestPayInsertFailureWritesNothing(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	store.payErr = errors.New("insert failed")
	_, err = svc.Pay(ctx, "u1", b.ID, PaymentInput{Method: MethodEWallet})
	require.Error(t, err)

	got, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Empty(t, store.payments)
}
