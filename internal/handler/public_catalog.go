package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/booking"
	"github.com/cinetix/backend/internal/model"
	"github.com/cinetix/backend/internal/repository"
)

// Theater layout rendered by the seat picker: rows A through H, 12 seats
// per row. Seat rows in the database exist only for labels that have been
// booked at least once.
const (
	theaterRows = "ABCDEFGH"
	seatsPerRow = 12
)

// CatalogHandler serves the public browse surface: movies, theaters,
// showtimes and seat availability. None of the endpoints require auth.
type CatalogHandler struct {
	Movies    *repository.MovieRepo
	Theaters  *repository.TheaterRepo
	Showtimes *repository.ShowtimeRepo
	Booking   *booking.Service
}

func NewCatalogHandler(m *repository.MovieRepo, t *repository.TheaterRepo, s *repository.ShowtimeRepo, b *booking.Service) *CatalogHandler {
	return &CatalogHandler{Movies: m, Theaters: t, Showtimes: s, Booking: b}
}

// ----- DTOs -----

type movieJSON struct {
	ID           string   `json:"id"`
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

type theaterJSON struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	Image      string   `json:"image"`
	Facilities []string `json:"facilities"`
}

type showtimeJSON struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id"`
	TheaterID string `json:"theater_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Price     int64  `json:"price"`
}

func toMovieJSON(m model.Movie) movieJSON {
	return movieJSON{
		ID: m.ID, Title: m.Title, Description: m.Description,
		Poster: m.Poster, Backdrop: m.Backdrop, Rating: m.Rating,
		Duration: m.Duration, ReleaseDate: m.ReleaseDate,
		IsNowShowing: m.IsNowShowing, IsComingSoon: m.IsComingSoon,
		Genre: m.Genre, Director: m.Director, Cast: m.Cast,
	}
}

func toTheaterJSON(t model.Theater) theaterJSON {
	return theaterJSON{
		ID: t.ID, Name: t.Name, Address: t.Address,
		City: t.City, Image: t.Image, Facilities: t.Facilities,
	}
}

func toShowtimeJSON(s model.Showtime) showtimeJSON {
	return showtimeJSON{
		ID: s.ID, MovieID: s.MovieID, TheaterID: s.TheaterID,
		Date: s.Date, Time: s.Time, Price: s.Price,
	}
}

// ListMovies serves GET /v1/movies with optional now_showing, coming_soon
// and search query parameters. A search term takes precedence over the
// status filters.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		movies, err := h.Movies.Search(ctx, q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"movies": moviesJSON(movies)})
	}

	var nowShowing, comingSoon *bool
	if v := c.QueryParam("now_showing"); v != "" {
		b := v == "true" || v == "1"
		nowShowing = &b
	}
	if v := c.QueryParam("coming_soon"); v != "" {
		b := v == "true" || v == "1"
		comingSoon = &b
	}
	movies, err := h.Movies.List(ctx, nowShowing, comingSoon)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": moviesJSON(movies)})
}

func moviesJSON(movies []model.Movie) []movieJSON {
	out := make([]movieJSON, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieJSON(m))
	}
	return out
}

// GetMovie serves GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": toMovieJSON(*m)})
}

// ListTheaters serves GET /v1/theaters with an optional city filter.
func (h *CatalogHandler) ListTheaters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theaters, err := h.Theaters.List(ctx, strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]theaterJSON, 0, len(theaters))
	for _, t := range theaters {
		out = append(out, toTheaterJSON(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"theaters": out})
}

// GetTheater serves GET /v1/theaters/:id.
func (h *CatalogHandler) GetTheater(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Theaters.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrTheaterNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"theater": toTheaterJSON(*t)})
}

// ListShowtimes serves GET /v1/showtimes filtered by movie_id, theater_id
// and/or date.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	showtimes, err := h.Showtimes.List(ctx,
		c.QueryParam("movie_id"), c.QueryParam("theater_id"), c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]showtimeJSON, 0, len(showtimes))
	for _, s := range showtimes {
		out = append(out, toShowtimeJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"showtimes": out})
}

// GetShowtime serves GET /v1/showtimes/:id, joined with movie and theater
// for the seat selection page.
func (h *CatalogHandler) GetShowtime(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Showtimes.GetDetail(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtime": echo.Map{
		"id":           d.ID,
		"movie_id":     d.MovieID,
		"theater_id":   d.TheaterID,
		"date":         d.Date,
		"time":         d.Time,
		"price":        d.Price,
		"movie_title":  d.MovieTitle,
		"movie_poster": d.MoviePoster,
		"theater_name": d.TheaterName,
		"theater_city": d.TheaterCity,
	}})
}

// ShowtimeSeats serves GET /v1/showtimes/:id/seats: the fixed layout plus
// the labels already taken by confirmed bookings. Pending bookings never
// appear here.
func (h *CatalogHandler) ShowtimeSeats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Showtimes.GetByID(ctx, id); err != nil {
		if err == repository.ErrShowtimeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	taken, err := h.Booking.TakenSeats(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows := make([]string, 0, len(theaterRows))
	for _, r := range theaterRows {
		rows = append(rows, string(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rows":          rows,
		"seats_per_row": seatsPerRow,
		"taken":         taken,
	})
}
