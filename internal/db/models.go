package db

import "time"

type ParkingSpot struct {
	ID       int
	Category string
	Occupied bool
}

// Ticket is one vehicle's stay. ExitTime is nil while the vehicle is still
// parked; Price only carries meaning once ExitTime is set.
type Ticket struct {
	ID          int
	Code        string
	SpotID      int
	Category    string
	VehicleReg  string
	DriverEmail string
	DriverPhone string
	Price       float64
	EntryTime   time.Time
	ExitTime    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
