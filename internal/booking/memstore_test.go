package booking

import (
	"context"
	"fmt"
	"sync"
)

// memStore is an in-memory Store used by the workflow tests. Every operation
// is an independent atomic step guarded by one mutex, mirroring the
// per-single-row-write atomicity (and nothing more) the real store provides.
// The fail hooks let tests abort the workflow at a chosen step.
type memStore struct {
	mu sync.Mutex

	showtimes    map[string]*Showtime
	users        map[string]memUser
	bookings     map[string]*Booking
	seats        []*Seat
	bookingSeats []memBookingSeat
	payments     []*Payment
	seq          int

	// fail hooks
	bookingErr error             // returned by CreateBooking
	linkErr    func(n int) error // consulted on the nth CreateBookingSeat call (1-based)
	linkCalls  int
	payErr     error // returned by CreatePayment
	statusErr  error // returned by UpdateBookingStatus
}

type memUser struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

type memBookingSeat struct {
	BookingID string
	SeatID    string
}

func newMemStore() *memStore {
	return &memStore{
		showtimes: make(map[string]*Showtime),
		users:     make(map[string]memUser),
		bookings:  make(map[string]*Booking),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addShowtime(id, theaterID string, price int64) *Showtime {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &Showtime{ID: id, TheaterID: theaterID, Price: price}
	m.showtimes[id] = st
	return st
}

func (m *memStore) GetShowtime(_ context.Context, id string) (*Showtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.showtimes[id]
	if !ok {
		return nil, ErrShowtimeNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *memStore) ConfirmedBookingIDs(_ context.Context, showtimeID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, b := range m.bookings {
		if b.ShowtimeID == showtimeID && b.Status == StatusConfirmed {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func (m *memStore) SeatRefsForBookings(_ context.Context, bookingIDs []string) ([]SeatRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]struct{}, len(bookingIDs))
	for _, id := range bookingIDs {
		want[id] = struct{}{}
	}
	var refs []SeatRef
	for _, bs := range m.bookingSeats {
		if _, ok := want[bs.BookingID]; !ok {
			continue
		}
		for _, s := range m.seats {
			if s.ID == bs.SeatID {
				refs = append(refs, SeatRef{Row: s.Row, Number: s.Number})
			}
		}
	}
	return refs, nil
}

func (m *memStore) UserExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *memStore) CreateUser(_ context.Context, id, email, fullName, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = memUser{ID: id, Email: email, FullName: fullName, Role: role}
	return nil
}

func (m *memStore) CreateBooking(_ context.Context, b *Booking) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bookingErr != nil {
		return "", m.bookingErr
	}
	id := m.nextID("bkg")
	cp := *b
	cp.ID = id
	m.bookings[id] = &cp
	return id, nil
}

func (m *memStore) FindSeat(_ context.Context, theaterID, row string, number int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.seats {
		if s.TheaterID == theaterID && s.Row == row && s.Number == number {
			return s.ID, nil
		}
	}
	return "", ErrSeatNotFound
}

func (m *memStore) CreateSeat(_ context.Context, s *Seat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID("seat")
	cp := *s
	cp.ID = id
	m.seats = append(m.seats, &cp)
	return id, nil
}

func (m *memStore) CreateBookingSeat(_ context.Context, bookingID, seatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkCalls++
	if m.linkErr != nil {
		if err := m.linkErr(m.linkCalls); err != nil {
			return err
		}
	}
	m.bookingSeats = append(m.bookingSeats, memBookingSeat{BookingID: bookingID, SeatID: seatID})
	return nil
}

func (m *memStore) GetBooking(_ context.Context, id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) CreatePayment(_ context.Context, p *Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payErr != nil {
		return m.payErr
	}
	cp := *p
	cp.ID = m.nextID("pay")
	p.ID = cp.ID
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return m.statusErr
	}
	b, ok := m.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	return nil
}

// seatRowCount returns how many seat rows exist for a (theater, row, number)
// triple.
func (m *memStore) seatRowCount(theaterID, row string, number int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.seats {
		if s.TheaterID == theaterID && s.Row == row && s.Number == number {
			n++
		}
	}
	return n
}

// linksFor returns the seat ids linked to a booking in link order.
func (m *memStore) linksFor(bookingID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, bs := range m.bookingSeats {
		if bs.BookingID == bookingID {
			ids = append(ids, bs.SeatID)
		}
	}
	return ids
}
