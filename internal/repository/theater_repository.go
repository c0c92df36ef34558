package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/cinetix/backend/internal/model"
)

// ErrTheaterNotFound is returned when a theater lookup yields no rows.
var ErrTheaterNotFound = errors.New("theater not found")

// TheaterRepo provides access to the theaters table. Facilities is a JSON
// array column handled the same way MovieRepo handles genre/cast.
type TheaterRepo struct {
	db *sql.DB
}

func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

const theaterColumns = "id, name, address, city, image, facilities, created_at, updated_at"

func scanTheater(row interface{ Scan(...any) error }) (model.Theater, error) {
	var (
		t              model.Theater
		facilitiesJSON []byte
	)
	err := row.Scan(&t.ID, &t.Name, &t.Address, &t.City, &t.Image, &facilitiesJSON,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Theater{}, err
	}
	if len(facilitiesJSON) > 0 {
		if err := json.Unmarshal(facilitiesJSON, &t.Facilities); err != nil {
			return model.Theater{}, err
		}
	}
	return t, nil
}

// List returns all theaters, optionally filtered by city, ordered by name.
func (r *TheaterRepo) List(ctx context.Context, city string) ([]model.Theater, error) {
	query := "SELECT " + theaterColumns + " FROM theaters"
	var args []interface{}
	if city != "" {
		query += " WHERE city = ?"
		args = append(args, city)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]model.Theater, 0)
	for rows.Next() {
		t, err := scanTheater(rows)
		if err != nil {
			return nil, err
		}
		theaters = append(theaters, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return theaters, nil
}

// GetByID retrieves a single theater.
func (r *TheaterRepo) GetByID(ctx context.Context, id string) (*model.Theater, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+theaterColumns+" FROM theaters WHERE id = ?", id)
	t, err := scanTheater(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a theater with a fresh UUID.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	facilitiesJSON, err := json.Marshal(t.Facilities)
	if err != nil {
		return err
	}
	t.ID = uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO theaters (id, name, address, city, image, facilities) VALUES (?,?,?,?,?,?)",
		t.ID, t.Name, t.Address, t.City, t.Image, facilitiesJSON)
	return err
}

// Update overwrites a theater's mutable fields.
func (r *TheaterRepo) Update(ctx context.Context, t *model.Theater) error {
	facilitiesJSON, err := json.Marshal(t.Facilities)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE theaters SET name=?, address=?, city=?, image=?, facilities=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		t.Name, t.Address, t.City, t.Image, facilitiesJSON, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheaterNotFound
	}
	return nil
}

// Delete removes a theater unless showtimes still reference it.
func (r *TheaterRepo) Delete(ctx context.Context, id string) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM showtimes WHERE theater_id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM theaters WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheaterNotFound
	}
	return nil
}
