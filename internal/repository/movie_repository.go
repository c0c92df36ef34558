package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cinetix/backend/internal/model"
)

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides access to the movies catalog. The genre and cast
// columns hold JSON arrays and are packed/unpacked here so callers only see
// []string.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = "id, title, description, poster, backdrop, rating, duration, " +
	"release_date, is_now_showing, is_coming_soon, genre, director, `cast`, created_at, updated_at"

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var (
		m         model.Movie
		genreJSON []byte
		castJSON  []byte
	)
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Poster, &m.Backdrop, &m.Rating, &m.Duration,
		&m.ReleaseDate, &m.IsNowShowing, &m.IsComingSoon, &genreJSON, &m.Director, &castJSON,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return model.Movie{}, err
	}
	if len(genreJSON) > 0 {
		if err := json.Unmarshal(genreJSON, &m.Genre); err != nil {
			return model.Movie{}, err
		}
	}
	if len(castJSON) > 0 {
		if err := json.Unmarshal(castJSON, &m.Cast); err != nil {
			return model.Movie{}, err
		}
	}
	return m, nil
}

// List returns movies filtered by showing status. Passing nil for a filter
// leaves it unconstrained. Results are ordered by release date descending.
func (r *MovieRepo) List(ctx context.Context, nowShowing, comingSoon *bool) ([]model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`
	var (
		conds []string
		args  []interface{}
	)
	if nowShowing != nil {
		conds = append(conds, "is_now_showing = ?")
		args = append(args, *nowShowing)
	}
	if comingSoon != nil {
		conds = append(conds, "is_coming_soon = ?")
		args = append(args, *comingSoon)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY release_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// Search returns movies whose title, director or description matches the
// query string (case-insensitive substring).
func (r *MovieRepo) Search(ctx context.Context, q string) ([]model.Movie, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	query := `SELECT ` + movieColumns + ` FROM movies
	          WHERE title LIKE ? OR director LIKE ? OR description LIKE ?
	          ORDER BY release_date DESC`
	rows, err := r.db.QueryContext(ctx, query, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID retrieves a single movie.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie with a fresh UUID. On success the movie's ID is
// populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return err
	}
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return err
	}
	m.ID = uuid.NewString()
	const q = "INSERT INTO movies (id, title, description, poster, backdrop, rating, duration, " +
		"release_date, is_now_showing, is_coming_soon, genre, director, `cast`) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, q,
		m.ID, m.Title, m.Description, m.Poster, m.Backdrop, m.Rating, m.Duration,
		m.ReleaseDate, m.IsNowShowing, m.IsComingSoon, genreJSON, m.Director, castJSON)
	return err
}

// Update overwrites all mutable fields of a movie. Returns ErrMovieNotFound
// when no row matches.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return err
	}
	castJSON, err := json.Marshal(m.Cast)
	if err != nil {
		return err
	}
	const q = "UPDATE movies SET title = ?, description = ?, poster = ?, backdrop = ?, rating = ?, " +
		"duration = ?, release_date = ?, is_now_showing = ?, is_coming_soon = ?, genre = ?, " +
		"director = ?, `cast` = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.Description, m.Poster, m.Backdrop, m.Rating,
		m.Duration, m.ReleaseDate, m.IsNowShowing, m.IsComingSoon, genreJSON,
		m.Director, castJSON, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie. Deleting a movie that still has showtimes returns
// ErrConflict so the admin surface can refuse instead of cascading.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM showtimes WHERE movie_id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
