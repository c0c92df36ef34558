package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinetix/backend/internal/model"
)

// The joined read types carry the underlying table row, so handlers read
// booking and payment columns through the embedded model structs.

func TestBookingSummaryCarriesBookingRow(t *testing.T) {
	now := time.Now()
	s := BookingSummary{
		Booking: model.Booking{
			ID: "b1", UserID: "u1", ShowtimeID: "st1",
			TotalPrice: 70000, Status: "pending",
			CreatedAt: now, UpdatedAt: now,
		},
		MovieTitle:  "Dune",
		TheaterName: "Grand 21",
		Seats:       []string{"A1", "A2"},
	}

	assert.Equal(t, "b1", s.ID)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "st1", s.ShowtimeID)
	assert.Equal(t, int64(70000), s.TotalPrice)
	assert.Equal(t, "pending", s.Status)
	assert.Equal(t, now, s.CreatedAt)
}

func TestPaymentRecordCarriesPaymentRow(t *testing.T) {
	p := PaymentRecord{
		Payment: model.Payment{
			ID: "p1", BookingID: "b1", Amount: 70000,
			Method: "e_wallet", Status: "completed",
		},
		UserEmail: "u1@example.com",
	}

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "b1", p.BookingID)
	assert.Equal(t, int64(70000), p.Amount)
	assert.Equal(t, "e_wallet", p.Method)
	assert.Equal(t, "completed", p.Status)
	assert.Equal(t, "u1@example.com", p.UserEmail)
}
