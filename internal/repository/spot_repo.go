package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkgate/internal/entities"
)

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(db *sql.DB) *SpotRepository {
	return &SpotRepository{DB: db}
}

// NextAvailable returns the id of one currently free spot of the given
// category. ErrNotFound means the category is full (or not configured).
func (r *SpotRepository) NextAvailable(category string) (int, error) {
	var id int
	query := `SELECT id FROM parking_spots WHERE category = $1 AND occupied = FALSE ORDER BY id LIMIT 1`
	err := r.DB.QueryRow(query, category).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("error querying next available spot: %w", err)
	}
	return id, nil
}

// Reserve flips a spot to occupied. The WHERE clause makes the
// check-then-reserve atomic: a spot that was grabbed in between (or never
// existed) matches no row and the caller gets ErrConflict.
func (r *SpotRepository) Reserve(id int) error {
	result, err := r.DB.Exec(`UPDATE parking_spots SET occupied = TRUE WHERE id = $1 AND occupied = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error reserving spot %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for spot %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("spot %d is not free or does not exist: %w", id, ErrConflict)
	}
	return nil
}

// Release frees an occupied spot. Releasing an already-free spot matches no
// row and is reported as ErrConflict rather than ignored.
func (r *SpotRepository) Release(id int) error {
	result, err := r.DB.Exec(`UPDATE parking_spots SET occupied = FALSE WHERE id = $1 AND occupied = TRUE`, id)
	if err != nil {
		return fmt.Errorf("error releasing spot %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for spot %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("spot %d is not occupied or does not exist: %w", id, ErrConflict)
	}
	return nil
}

// Occupancy returns per-category spot counts.
func (r *SpotRepository) Occupancy() ([]entities.CategoryOccupancy, error) {
	query := `
		SELECT category,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE occupied) AS occupied
		FROM parking_spots
		GROUP BY category
		ORDER BY category`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying occupancy: %w", err)
	}
	defer rows.Close()

	var result []entities.CategoryOccupancy
	for rows.Next() {
		var c entities.CategoryOccupancy
		if err := rows.Scan(&c.Category, &c.TotalSpots, &c.OccupiedSpots); err != nil {
			return nil, fmt.Errorf("error scanning occupancy row: %w", err)
		}
		c.FreeSpots = c.TotalSpots - c.OccupiedSpots
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating occupancy rows: %w", err)
	}
	return result, nil
}

// ResizeCategory grows or shrinks the number of spots for a category.
// Shrinking only removes free spots; occupied ones are never deleted, so the
// target may not be reached while vehicles are parked. The count and the
// mutation run in one transaction with the category rows locked, so two
// concurrent resizes (or a resize racing an entry) cannot overshoot.
func (r *SpotRepository) ResizeCategory(category string, total int) error {
	if total < 0 {
		return fmt.Errorf("total spots must not be negative, got %d", total)
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting resize transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	query := `SELECT COUNT(*) FROM (SELECT id FROM parking_spots WHERE category = $1 FOR UPDATE) locked`
	if err := tx.QueryRow(query, category).Scan(&current); err != nil {
		return fmt.Errorf("error counting spots for category %s: %w", category, err)
	}

	switch {
	case total > current:
		query := `INSERT INTO parking_spots (category, occupied) SELECT $1, FALSE FROM generate_series(1, $2)`
		if _, err := tx.Exec(query, category, total-current); err != nil {
			return fmt.Errorf("error adding spots for category %s: %w", category, err)
		}
	case total < current:
		query := `
			DELETE FROM parking_spots
			WHERE id IN (
				SELECT id FROM parking_spots
				WHERE category = $1 AND occupied = FALSE
				ORDER BY id DESC
				LIMIT $2
			)`
		result, err := tx.Exec(query, category, current-total)
		if err != nil {
			return fmt.Errorf("error removing spots for category %s: %w", category, err)
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading rows affected: %w", err)
		}
		if int(removed) < current-total {
			return fmt.Errorf("only %d of %d spots removed for category %s, the rest are occupied", removed, current-total, category)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing resize for category %s: %w", category, err)
	}
	return nil
}
