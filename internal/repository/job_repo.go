package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetOrphanOccupiedSpotIDs finds spots still marked occupied although no open
// ticket references them. These appear when a spot release fails after a
// ticket was closed.
func (r *JobRepository) GetOrphanOccupiedSpotIDs() ([]int, error) {
	query := `
		SELECT s.id FROM parking_spots s
		WHERE s.occupied = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM tickets t WHERE t.spot_id = s.id AND t.exit_time IS NULL
		  )`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying orphan occupied spots: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning spot ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// FreeSpots marks the given spots as free.
func (r *JobRepository) FreeSpots(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE parking_spots SET occupied = FALSE WHERE id = ANY($1)`
	result, err := r.DB.Exec(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error freeing spots: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Freed %d orphan occupied spots", rowsAffected)
	}
	return nil
}

// GetTicketsOpenSince lists codes of tickets whose entry time is before the
// cutoff and that are still open.
func (r *JobRepository) GetTicketsOpenSince(cutoff time.Time) ([]string, error) {
	query := `SELECT code FROM tickets WHERE exit_time IS NULL AND entry_time < $1 ORDER BY entry_time`
	rows, err := r.DB.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying stale open tickets: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("error scanning ticket code: %w", err)
		}
		codes = append(codes, code)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return codes, nil
}
