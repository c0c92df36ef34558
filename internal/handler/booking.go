package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/booking"
	"github.com/cinetix/backend/internal/queue"
	"github.com/cinetix/backend/internal/repository"
	queue_publisher "github.com/cinetix/backend/internal/service"
)

// BookingHandler serves the customer booking surface: creating a booking,
// paying for it and reading booking history.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
}

func NewBookingHandler(svc *booking.Service, b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b}
}

// identityFrom rebuilds the caller's identity from the claims JWTAuth put in
// the context. Email and full name are optional hints used only when the
// workflow has to materialize a user row.
func identityFrom(c echo.Context) booking.Identity {
	id, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)
	name, _ := c.Get("full_name").(string)
	return booking.Identity{ID: id, Email: email, FullName: name}
}

type createBookingReq struct {
	ShowtimeID string   `json:"showtime_id"`
	Seats      []string `json:"seats"`
}

type paymentReq struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type bookingJSON struct {
	ID         string `json:"id"`
	ShowtimeID string `json:"showtime_id"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
}

type bookingSummaryJSON struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalPrice  int64     `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster string    `json:"movie_poster"`
	TheaterName string    `json:"theater_name"`
	ShowDate    string    `json:"show_date"`
	ShowTime    string    `json:"show_time"`
	Seats       []string  `json:"seats"`
}

func toSummaryJSON(b repository.BookingSummary) bookingSummaryJSON {
	return bookingSummaryJSON{
		ID: b.ID, Status: b.Status, TotalPrice: b.TotalPrice, CreatedAt: b.CreatedAt,
		MovieTitle: b.MovieTitle, MoviePoster: b.MoviePoster, TheaterName: b.TheaterName,
		ShowDate: b.ShowDate, ShowTime: b.ShowTime, Seats: b.Seats,
	}
}

// Create serves POST /v1/bookings: runs the booking workflow for the
// caller's seat selection and returns the pending booking.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Svc.CreateBooking(ctx, identityFrom(c), booking.CreateBookingInput{
		ShowtimeID: req.ShowtimeID,
		Seats:      req.Seats,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": bookingJSON{
		ID: b.ID, ShowtimeID: b.ShowtimeID, TotalPrice: b.TotalPrice, Status: b.Status,
	}})
}

// Pay serves POST /v1/bookings/:id/payment: validates the payment input,
// records the payment and confirms the booking, then publishes a
// booking.confirmed event. Publish failures are logged and never fail the
// request.
func (h *BookingHandler) Pay(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ident := identityFrom(c)
	bookingID := c.Param("id")
	p, err := h.Svc.Pay(ctx, ident.ID, bookingID, booking.PaymentInput{
		Method:     req.Method,
		CardNumber: req.CardNumber,
		CardName:   req.CardName,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	})
	if err != nil {
		return bookingError(c, err)
	}

	h.publishConfirmed(ident.ID, bookingID, p.Amount)

	return c.JSON(http.StatusOK, echo.Map{"payment": echo.Map{
		"booking_id": p.BookingID,
		"amount":     p.Amount,
		"method":     p.Method,
		"status":     p.Status,
	}})
}

// publishConfirmed enriches and publishes the booking.confirmed event in the
// background so broker hiccups never delay the HTTP response.
func (h *BookingHandler) publishConfirmed(userID, bookingID string, amount int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.BookingConfirmedEvent{
			BookingID:  bookingID,
			UserID:     userID,
			TotalPrice: amount,
			PaidAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if sum, err := h.Bookings.GetForUser(ctx, userID, bookingID); err == nil {
			ev.MovieTitle = sum.MovieTitle
			ev.TheaterName = sum.TheaterName
			ev.ShowDate = sum.ShowDate
			ev.ShowTime = sum.ShowTime
			ev.SeatLabels = sum.Seats
		}
		if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
			log.Printf("booking: publish confirmed event failed: %v", err)
		}
	}()
}

// ListMine serves GET /v1/bookings: the caller's booking history.
func (h *BookingHandler) ListMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, _ := c.Get("user_id").(string)
	summaries, err := h.Bookings.ListForUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingSummaryJSON, 0, len(summaries))
	for _, b := range summaries {
		out = append(out, toSummaryJSON(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// GetMine serves GET /v1/bookings/:id.
func (h *BookingHandler) GetMine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, _ := c.Get("user_id").(string)
	b, err := h.Bookings.GetForUser(ctx, uid, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": toSummaryJSON(*b)})
}

// bookingError maps workflow errors onto HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrIdentityRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, booking.ErrShowtimeNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, booking.ErrNotBookingOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrNoSeats),
		errors.Is(err, booking.ErrTooManySeats),
		errors.Is(err, booking.ErrDuplicateSeat),
		errors.Is(err, booking.ErrInvalidSeatLabel),
		errors.Is(err, booking.ErrInvalidPaymentMethod),
		errors.Is(err, booking.ErrInvalidCardNumber),
		errors.Is(err, booking.ErrMissingCardholder),
		errors.Is(err, booking.ErrInvalidExpiry),
		errors.Is(err, booking.ErrInvalidCVV):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}
