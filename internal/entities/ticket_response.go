package entities

import "time"

type TicketResponse struct {
	Code       string     `json:"code"`
	SpotID     int        `json:"spot_id"`
	Category   string     `json:"category"`
	VehicleReg string     `json:"vehicle_reg"`
	Price      float64    `json:"price"`
	EntryTime  time.Time  `json:"entry_time"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
	Status     string     `json:"status"`
}

type TicketsList struct {
	Total   int              `json:"total"`
	Tickets []TicketResponse `json:"tickets"`
}
