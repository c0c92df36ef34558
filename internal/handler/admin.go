package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/model"
	"github.com/cinetix/backend/internal/repository"
)

// AdminHandler serves the back-office: catalog CRUD, booking oversight and
// payment history. Every route behind it requires the "admin" role.
type AdminHandler struct {
	Movies    *repository.MovieRepo
	Theaters  *repository.TheaterRepo
	Showtimes *repository.ShowtimeRepo
	Bookings  *repository.BookingRepo
	Payments  *repository.PaymentRepo
}

func NewAdminHandler(m *repository.MovieRepo, t *repository.TheaterRepo, s *repository.ShowtimeRepo,
	b *repository.BookingRepo, p *repository.PaymentRepo) *AdminHandler {
	return &AdminHandler{Movies: m, Theaters: t, Showtimes: s, Bookings: b, Payments: p}
}

// ----- movies -----

type movieReq struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Poster       string   `json:"poster"`
	Backdrop     string   `json:"backdrop"`
	Rating       string   `json:"rating"`
	Duration     string   `json:"duration"`
	ReleaseDate  string   `json:"release_date"`
	IsNowShowing bool     `json:"is_now_showing"`
	IsComingSoon bool     `json:"is_coming_soon"`
	Genre        []string `json:"genre"`
	Director     string   `json:"director"`
	Cast         []string `json:"cast"`
}

func (r movieReq) toModel() model.Movie {
	return model.Movie{
		Title: strings.TrimSpace(r.Title), Description: r.Description,
		Poster: r.Poster, Backdrop: r.Backdrop, Rating: r.Rating,
		Duration: r.Duration, ReleaseDate: r.ReleaseDate,
		IsNowShowing: r.IsNowShowing, IsComingSoon: r.IsComingSoon,
		Genre: r.Genre, Director: r.Director, Cast: r.Cast,
	}
}

// CreateMovie serves POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := req.toModel()
	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"movie": toMovieJSON(m)})
}

// UpdateMovie serves PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := req.toModel()
	m.ID = c.Param("id")
	if err := h.Movies.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": toMovieJSON(m)})
}

// DeleteMovie serves DELETE /v1/admin/movies/:id.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Delete(ctx, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has showtimes"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- theaters -----

type theaterReq struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	Image      string   `json:"image"`
	Facilities []string `json:"facilities"`
}

// CreateTheater serves POST /v1/admin/theaters.
func (h *AdminHandler) CreateTheater(c echo.Context) error {
	var req theaterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Theater{
		Name: strings.TrimSpace(req.Name), Address: req.Address,
		City: req.City, Image: req.Image, Facilities: req.Facilities,
	}
	if err := h.Theaters.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create theater failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"theater": toTheaterJSON(t)})
}

// UpdateTheater serves PUT /v1/admin/theaters/:id.
func (h *AdminHandler) UpdateTheater(c echo.Context) error {
	var req theaterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Theater{
		ID: c.Param("id"), Name: strings.TrimSpace(req.Name), Address: req.Address,
		City: req.City, Image: req.Image, Facilities: req.Facilities,
	}
	if err := h.Theaters.Update(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update theater failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"theater": toTheaterJSON(t)})
}

// DeleteTheater serves DELETE /v1/admin/theaters/:id.
func (h *AdminHandler) DeleteTheater(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Theaters.Delete(ctx, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrTheaterNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "theater has showtimes"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete theater failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- showtimes -----

type showtimeReq struct {
	MovieID   string `json:"movie_id"`
	TheaterID string `json:"theater_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Price     int64  `json:"price"`
}

// CreateShowtime serves POST /v1/admin/showtimes.
func (h *AdminHandler) CreateShowtime(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == "" || req.TheaterID == "" || req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, theater_id, date and time required"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Showtime{
		MovieID: req.MovieID, TheaterID: req.TheaterID,
		Date: req.Date, Time: req.Time, Price: req.Price,
	}
	if err := h.Showtimes.Create(ctx, &s); err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrTheaterNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create showtime failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"showtime": toShowtimeJSON(s)})
}

// UpdateShowtime serves PUT /v1/admin/showtimes/:id (schedule and price only).
func (h *AdminHandler) UpdateShowtime(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Showtime{ID: c.Param("id"), Date: req.Date, Time: req.Time, Price: req.Price}
	if err := h.Showtimes.Update(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update showtime failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtime": toShowtimeJSON(s)})
}

// DeleteShowtime serves DELETE /v1/admin/showtimes/:id.
func (h *AdminHandler) DeleteShowtime(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Showtimes.Delete(ctx, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrShowtimeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showtime has bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete showtime failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- bookings & payments -----

// ListBookings serves GET /v1/admin/bookings with an optional status filter.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summaries, err := h.Bookings.ListAll(ctx, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingSummaryJSON, 0, len(summaries))
	for _, b := range summaries {
		out = append(out, toSummaryJSON(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// CancelBooking serves POST /v1/admin/bookings/:id/cancel, the only path to
// the "cancelled" status.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Cancel(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPayments serves GET /v1/admin/payments with an optional method filter.
func (h *AdminHandler) ListPayments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListAll(ctx, c.QueryParam("method"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, echo.Map{
			"id":         p.ID,
			"booking_id": p.BookingID,
			"amount":     p.Amount,
			"method":     p.Method,
			"status":     p.Status,
			"created_at": p.CreatedAt,
			"user_email": p.UserEmail,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}
