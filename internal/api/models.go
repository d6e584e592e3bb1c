package api

import "time"

// Entry
type EntryRequest struct {
	VehicleReg  string `json:"vehicle_reg"`
	Category    string `json:"category"`
	DriverEmail string `json:"driver_email,omitempty"`
	DriverPhone string `json:"driver_phone,omitempty"`
}
type EntryResponse struct {
	TicketCode string    `json:"ticket_code"`
	SpotID     int       `json:"spot_id"`
	EntryTime  time.Time `json:"entry_time"`
	Message    string    `json:"message"`
}

// Exit
type ExitRequest struct {
	VehicleReg string `json:"vehicle_reg"`
}
type ExitResponse struct {
	TicketCode string    `json:"ticket_code"`
	SpotID     int       `json:"spot_id"`
	Fare       float64   `json:"fare"`
	EntryTime  time.Time `json:"entry_time"`
	ExitTime   time.Time `json:"exit_time"`
	Message    string    `json:"message"`
}
