package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkgate/internal/db"
	"parkgate/internal/entities"
)

type TicketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

func (r *TicketRepository) Save(t *db.Ticket) error {
	query := `
		INSERT INTO tickets
		(code, spot_id, vehicle_reg, driver_email, driver_phone, price, entry_time, exit_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		t.Code,
		t.SpotID,
		t.VehicleReg,
		t.DriverEmail,
		t.DriverPhone,
		t.Price,
		t.EntryTime,
		t.ExitTime,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting ticket for vehicle %s: %w", t.VehicleReg, err)
	}
	return nil
}

// GetOpenByVehicle returns the most recent open ticket for the vehicle.
func (r *TicketRepository) GetOpenByVehicle(vehicleReg string) (*db.Ticket, error) {
	var t db.Ticket
	var exitTime sql.NullTime
	query := `
		SELECT t.id, t.code, t.spot_id, s.category, t.vehicle_reg, t.driver_email, t.driver_phone,
		       t.price, t.entry_time, t.exit_time, t.created_at, t.updated_at
		FROM tickets t
		JOIN parking_spots s ON s.id = t.spot_id
		WHERE t.vehicle_reg = $1 AND t.exit_time IS NULL
		ORDER BY t.entry_time DESC
		LIMIT 1`
	err := r.DB.QueryRow(query, vehicleReg).Scan(
		&t.ID, &t.Code, &t.SpotID, &t.Category, &t.VehicleReg, &t.DriverEmail, &t.DriverPhone,
		&t.Price, &t.EntryTime, &exitTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying open ticket for vehicle %s: %w", vehicleReg, err)
	}
	if exitTime.Valid {
		t.ExitTime = &exitTime.Time
	}
	return &t, nil
}

// Update closes a ticket: it stamps exit time and price. The exit_time IS
// NULL guard keeps a ticket from being closed twice.
func (r *TicketRepository) Update(t *db.Ticket) error {
	query := `UPDATE tickets SET price = $1, exit_time = $2, updated_at = NOW() WHERE id = $3 AND exit_time IS NULL`
	result, err := r.DB.Exec(query, t.Price, t.ExitTime, t.ID)
	if err != nil {
		return fmt.Errorf("error updating ticket %s: %w", t.Code, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for ticket %s: %w", t.Code, err)
	}
	if rows == 0 {
		return fmt.Errorf("ticket %s is already closed or does not exist: %w", t.Code, ErrConflict)
	}
	return nil
}

// CountClosedByVehicle counts the vehicle's closed tickets. COUNT(exit_time)
// skips NULLs, so open tickets do not count.
func (r *TicketRepository) CountClosedByVehicle(vehicleReg string) (int, error) {
	var count int
	query := `SELECT COUNT(exit_time) FROM tickets WHERE vehicle_reg = $1`
	if err := r.DB.QueryRow(query, vehicleReg).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting closed tickets for vehicle %s: %w", vehicleReg, err)
	}
	return count, nil
}

// ListOpen returns every currently open ticket, oldest entry first, so an
// operator sees the vehicles that have been parked the longest on top.
func (r *TicketRepository) ListOpen() ([]entities.TicketResponse, error) {
	query := `
		SELECT t.code, t.spot_id, s.category, t.vehicle_reg, t.price, t.entry_time
		FROM tickets t
		JOIN parking_spots s ON s.id = t.spot_id
		WHERE t.exit_time IS NULL
		ORDER BY t.entry_time`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []entities.TicketResponse
	for rows.Next() {
		var t entities.TicketResponse
		if err := rows.Scan(&t.Code, &t.SpotID, &t.Category, &t.VehicleReg, &t.Price, &t.EntryTime); err != nil {
			return nil, fmt.Errorf("error scanning open ticket row: %w", err)
		}
		t.Status = "open"
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating open ticket rows: %w", err)
	}
	return tickets, nil
}

// ListTickets returns tickets filtered by vehicle and/or status
// ("open"/"closed"), newest first. Empty filters match everything.
func (r *TicketRepository) ListTickets(vehicleReg, status string) ([]entities.TicketResponse, error) {
	query := `
		SELECT t.code, t.spot_id, s.category, t.vehicle_reg, t.price, t.entry_time, t.exit_time
		FROM tickets t
		JOIN parking_spots s ON s.id = t.spot_id
		WHERE ($1 = '' OR t.vehicle_reg = $1)
		  AND ($2 = ''
		       OR ($2 = 'open' AND t.exit_time IS NULL)
		       OR ($2 = 'closed' AND t.exit_time IS NOT NULL))
		ORDER BY t.entry_time DESC`
	rows, err := r.DB.Query(query, vehicleReg, status)
	if err != nil {
		return nil, fmt.Errorf("error listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []entities.TicketResponse
	for rows.Next() {
		var t entities.TicketResponse
		var exitTime sql.NullTime
		if err := rows.Scan(&t.Code, &t.SpotID, &t.Category, &t.VehicleReg, &t.Price, &t.EntryTime, &exitTime); err != nil {
			return nil, fmt.Errorf("error scanning ticket row: %w", err)
		}
		if exitTime.Valid {
			t.ExitTime = &exitTime.Time
			t.Status = "closed"
		} else {
			t.Status = "open"
		}
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating ticket rows: %w", err)
	}
	return tickets, nil
}
