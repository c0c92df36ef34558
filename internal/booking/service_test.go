package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakenSeatsEmptyWithoutConfirmedBookings(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)

	labels, err := svc.TakenSeats(context.Background(), "st1")
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestTakenSeatsIgnoresPendingBookings(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	// a pending booking holds A1 and A2 but blocks nothing
	pending, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1", "A2"},
	})
	require.NoError(t, err)

	labels, err := svc.TakenSeats(ctx, "st1")
	require.NoError(t, err)
	assert.Empty(t, labels)

	// once paid, its seats become taken
	_, err = svc.Pay(ctx, "u1", pending.ID, PaymentInput{Method: MethodEWallet})
	require.NoError(t, err)

	labels, err = svc.TakenSeats(ctx, "st1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A1", "A2"}, labels)
}

func TestTakenSeatsScopedToShowtime(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	store.addShowtime("st2", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)
	_, err = svc.Pay(ctx, "u1", b.ID, PaymentInput{Method: MethodEWallet})
	require.NoError(t, err)

	labels, err := svc.TakenSeats(ctx, "st2")
	require.NoError(t, err)
	assert.Empty(t, labels, "confirmed seats for another showtime must not leak")
}

func TestCreateBookingTotalPrice(t *testing.T) {
	for count := 1; count <= 10; count++ {
		t.Run(fmt.Sprintf("%d_seats", count), func(t *testing.T) {
			store := newMemStore()
			store.addShowtime("st1", "th1", 35000)
			svc := NewService(store)

			seats := make([]string, count)
			for i := range seats {
				seats[i] = FormatSeatLabel("A", i+1)
			}
			b, err := svc.CreateBooking(context.Background(), Identity{ID: "u1"}, CreateBookingInput{
				ShowtimeID: "st1", Seats: seats,
			})
			require.NoError(t, err)
			assert.Equal(t, int64(count)*35000, b.TotalPrice)
			assert.Equal(t, StatusPending, b.Status)
		})
	}
}

func TestCreateBookingCreatesMissingUser(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)

	_, err := svc.CreateBooking(context.Background(), Identity{ID: "u9", Email: "u9@example.com"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	u, ok := store.users["u9"]
	require.True(t, ok, "a user row must be created for an unknown identity")
	assert.Equal(t, "u9@example.com", u.Email)
	assert.Equal(t, "User", u.FullName, "display name falls back to \"User\"")
	assert.Equal(t, "user", u.Role)
}

func TestCreateBookingSeatResolutionIdempotent(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b1, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)
	b2, err := svc.CreateBooking(ctx, Identity{ID: "u2"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)

	// the second submission resolves to the seat created by the first;
	// no duplicate row for (theater, row, number)
	assert.Equal(t, 1, store.seatRowCount("th1", "A", 1))
	assert.Equal(t, store.linksFor(b1.ID), store.linksFor(b2.ID))
}

func TestCreateBookingValidation(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	cases := []struct {
		name string
		id   Identity
		in   CreateBookingInput
		want error
	}{
		{"missing identity", Identity{}, CreateBookingInput{ShowtimeID: "st1", Seats: []string{"A1"}}, ErrIdentityRequired},
		{"no seats", Identity{ID: "u1"}, CreateBookingInput{ShowtimeID: "st1"}, ErrNoSeats},
		{"duplicate seat", Identity{ID: "u1"}, CreateBookingInput{ShowtimeID: "st1", Seats: []string{"A1", "A1"}}, ErrDuplicateSeat},
		{"unknown showtime", Identity{ID: "u1"}, CreateBookingInput{ShowtimeID: "nope", Seats: []string{"A1"}}, ErrShowtimeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, tc.id, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("too many seats", func(t *testing.T) {
		seats := make([]string, MaxTicketCount+1)
		for i := range seats {
			seats[i] = FormatSeatLabel("A", i+1)
		}
		_, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{ShowtimeID: "st1", Seats: seats})
		assert.ErrorIs(t, err, ErrTooManySeats)
	})

	t.Run("malformed label rejected before any write", func(t *testing.T) {
		_, err := svc.CreateBooking(ctx, Identity{ID: "u1"}, CreateBookingInput{ShowtimeID: "st1", Seats: []string{"A1", "??"}})
		require.Error(t, err)
		assert.Empty(t, store.bookings, "validation failures must not insert a booking")
	})
}

// wrappedFindSeatStore annotates seat-lookup errors the way a store layered
// over another driver might.
type wrappedFindSeatStore struct {
	*memStore
}

func (s wrappedFindSeatStore) FindSeat(ctx context.Context, theaterID, row string, number int) (string, error) {
	id, err := s.memStore.FindSeat(ctx, theaterID, row, number)
	if err != nil {
		return "", fmt.Errorf("seat lookup: %w", err)
	}
	return id, nil
}

func TestCreateBookingCreatesSeatOnWrappedLookupMiss(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(wrappedFindSeatStore{store})

	b, err := svc.CreateBooking(context.Background(), Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.seatRowCount("th1", "A", 1))
	assert.Len(t, store.linksFor(b.ID), 1)
}

func TestCreateBookingSeatFailureLeavesPartialState(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	boom := errors.New("insert failed")
	store.linkErr = func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	}
	svc := NewService(store)

	_, err := svc.CreateBooking(context.Background(), Identity{ID: "u1"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1", "A2", "A3"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seat A2", "error names the failing seat")

	// no compensating rollback: the pending booking and the first link stay
	require.Len(t, store.bookings, 1)
	for _, b := range store.bookings {
		assert.Equal(t, StatusPending, b.Status)
		assert.Len(t, store.linksFor(b.ID), 1)
	}
}

func TestDoubleBookingRacePreserved(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	// both workflows snapshot availability before either writes
	for _, uid := range []string{"u1", "u2"} {
		labels, err := svc.TakenSeats(ctx, "st1")
		require.NoError(t, err, uid)
		assert.Empty(t, labels)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uid := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			b, err := svc.CreateBooking(ctx, Identity{ID: uid}, CreateBookingInput{
				ShowtimeID: "st1", Seats: []string{"A1"},
			})
			if err == nil {
				_, err = svc.Pay(ctx, uid, b.ID, PaymentInput{Method: MethodEWallet})
			}
			errs[i] = err
		}(i, uid)
	}
	wg.Wait()

	// nothing guards the check-to-use window: both bookings succeed and both
	// end confirmed against the same physical seat
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, store.seatRowCount("th1", "A", 1))
	confirmed := 0
	for _, b := range store.bookings {
		if b.Status == StatusConfirmed {
			confirmed++
			assert.Len(t, store.linksFor(b.ID), 1)
		}
	}
	assert.Equal(t, 2, confirmed)
}

func TestHappyPathEndToEnd(t *testing.T) {
	store := newMemStore()
	store.addShowtime("st1", "th1", 50000)
	svc := NewService(store)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, Identity{ID: "u1", Email: "u1@example.com", FullName: "Dina"}, CreateBookingInput{
		ShowtimeID: "st1", Seats: []string{"A1", "A2"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), b.TotalPrice)
	assert.Equal(t, StatusPending, b.Status)
	assert.Len(t, store.linksFor(b.ID), 2)
	assert.Equal(t, 1, store.seatRowCount("th1", "A", 1))
	assert.Equal(t, 1, store.seatRowCount("th1", "A", 2))

	p, err := svc.Pay(ctx, "u1", b.ID, PaymentInput{
		Method:     MethodCreditCard,
		CardNumber: "4111111111111111",
		CardName:   "Dina",
		Expiry:     "12/27",
		CVV:        "123",
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, p.Status)
	assert.Equal(t, int64(100000), p.Amount)

	got, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
}
