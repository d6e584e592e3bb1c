package entities

type RateResponse struct {
	Category      string  `json:"category"`
	RatePerHour   float64 `json:"rate_per_hour"`
	FreeMinutes   int     `json:"free_minutes"`
	LoyaltyFactor float64 `json:"loyalty_factor"`
}
