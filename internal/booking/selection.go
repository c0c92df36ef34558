package booking

// Ticket count bounds enforced by the selection rules.
const (
	MinTicketCount = 1
	MaxTicketCount = 10
)

// SelectionState describes how far a seat selection has progressed relative
// to the chosen ticket count.
type SelectionState string

const (
	SelectionIdle    SelectionState = "idle"    // no seats chosen
	SelectionPartial SelectionState = "partial" // some but not all seats chosen
	SelectionReady   SelectionState = "ready"   // exactly ticketCount seats chosen
)

// Selection tracks which seats a user has picked for a showtime. Taken seats
// can never be selected, a seat can be selected at most once, and the
// selection never grows beyond the ticket count. Selection order is
// preserved: when the ticket count is lowered below the current selection,
// the earliest-selected seats are kept.
type Selection struct {
	ticketCount int
	taken       map[string]struct{}
	seats       []string
}

// NewSelection builds a Selection for the given ticket count and set of
// taken seat labels. The ticket count is clamped to [MinTicketCount,
// MaxTicketCount].
func NewSelection(ticketCount int, taken []string) *Selection {
	s := &Selection{taken: make(map[string]struct{}, len(taken))}
	for _, t := range taken {
		s.taken[t] = struct{}{}
	}
	s.ticketCount = clampTicketCount(ticketCount)
	return s
}

func clampTicketCount(n int) int {
	if n < MinTicketCount {
		return MinTicketCount
	}
	if n > MaxTicketCount {
		return MaxTicketCount
	}
	return n
}

// Toggle selects the seat when it is free and the selection has room, or
// deselects it when it is already selected. Toggling a taken seat is a
// silent no-op. It reports whether the selection changed.
func (s *Selection) Toggle(label string) bool {
	if _, ok := s.taken[label]; ok {
		return false
	}
	for i, sel := range s.seats {
		if sel == label {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return true
		}
	}
	if len(s.seats) >= s.ticketCount {
		return false
	}
	s.seats = append(s.seats, label)
	return true
}

// SetTicketCount changes the ticket count, clamping it to the allowed range.
// When the new count is below the current selection size, the selection is
// truncated to the first n seats in original selection order.
func (s *Selection) SetTicketCount(n int) {
	n = clampTicketCount(n)
	if n < len(s.seats) {
		s.seats = s.seats[:n]
	}
	s.ticketCount = n
}

// TicketCount returns the current ticket count.
func (s *Selection) TicketCount() int { return s.ticketCount }

// Seats returns the selected seat labels in selection order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.seats))
	copy(out, s.seats)
	return out
}

// State returns idle, partial or ready depending on how many seats are
// selected relative to the ticket count.
func (s *Selection) State() SelectionState {
	switch {
	case len(s.seats) == 0:
		return SelectionIdle
	case len(s.seats) == s.ticketCount:
		return SelectionReady
	default:
		return SelectionPartial
	}
}

// CanConfirm reports whether the confirm action is enabled: exactly
// ticketCount seats selected.
func (s *Selection) CanConfirm() bool {
	return len(s.seats) == s.ticketCount
}

// Total returns the price of the current selection at the given per-seat
// price.
func (s *Selection) Total(price int64) int64 {
	return int64(len(s.seats)) * price
}
