package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cinetix/backend/internal/model"
)

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ShowtimeDetail is a showtime joined with the movie and theater it belongs
// to, as rendered on the seat selection page.
type ShowtimeDetail struct {
	model.Showtime
	MovieTitle  string
	MoviePoster string
	TheaterName string
	TheaterCity string
}

// ShowtimeRepo provides access to the showtimes table.
type ShowtimeRepo struct {
	db *sql.DB
}

func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

const showtimeColumns = "id, movie_id, theater_id, `date`, `time`, price, created_at, updated_at"

func scanShowtime(row interface{ Scan(...any) error }) (model.Showtime, error) {
	var s model.Showtime
	err := row.Scan(&s.ID, &s.MovieID, &s.TheaterID, &s.Date, &s.Time, &s.Price,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns showtimes filtered by movie, theater and/or date. Empty filter
// values are ignored. Results are ordered by date then time.
func (r *ShowtimeRepo) List(ctx context.Context, movieID, theaterID, date string) ([]model.Showtime, error) {
	query := "SELECT " + showtimeColumns + " FROM showtimes"
	var (
		conds []string
		args  []interface{}
	)
	if movieID != "" {
		conds = append(conds, "movie_id = ?")
		args = append(args, movieID)
	}
	if theaterID != "" {
		conds = append(conds, "theater_id = ?")
		args = append(args, theaterID)
	}
	if date != "" {
		conds = append(conds, "`date` = ?")
		args = append(args, date)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY `date`, `time`"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]model.Showtime, 0)
	for rows.Next() {
		s, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}
		showtimes = append(showtimes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return showtimes, nil
}

// GetByID retrieves a single showtime.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id string) (*model.Showtime, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+showtimeColumns+" FROM showtimes WHERE id = ?", id)
	s, err := scanShowtime(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetDetail retrieves a showtime joined with its movie and theater.
func (r *ShowtimeRepo) GetDetail(ctx context.Context, id string) (*ShowtimeDetail, error) {
	const q = "SELECT s.id, s.movie_id, s.theater_id, s.`date`, s.`time`, s.price, " +
		"s.created_at, s.updated_at, m.title, m.poster, t.name, t.city " +
		"FROM showtimes s " +
		"JOIN movies m ON m.id = s.movie_id " +
		"JOIN theaters t ON t.id = s.theater_id " +
		"WHERE s.id = ?"
	var d ShowtimeDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.MovieID, &d.TheaterID, &d.Date, &d.Time, &d.Price,
		&d.CreatedAt, &d.UpdatedAt, &d.MovieTitle, &d.MoviePoster, &d.TheaterName, &d.TheaterCity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create inserts a showtime with a fresh UUID. The referenced movie and
// theater must exist; a missing reference surfaces as ErrMovieNotFound or
// ErrTheaterNotFound rather than a foreign key error.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	var exists int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM movies WHERE id = ?", s.MovieID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrMovieNotFound
	}
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM theaters WHERE id = ?", s.TheaterID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrTheaterNotFound
	}
	s.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO showtimes (id, movie_id, theater_id, `date`, `time`, price) VALUES (?,?,?,?,?,?)",
		s.ID, s.MovieID, s.TheaterID, s.Date, s.Time, s.Price)
	return err
}

// Update overwrites a showtime's schedule and price.
func (r *ShowtimeRepo) Update(ctx context.Context, s *model.Showtime) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE showtimes SET `date`=?, `time`=?, price=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		s.Date, s.Time, s.Price, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}

// Delete removes a showtime unless bookings still reference it.
func (r *ShowtimeRepo) Delete(ctx context.Context, id string) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE showtime_id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM showtimes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
