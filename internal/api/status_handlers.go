package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"parkgate/internal/entities"
	httperrors "parkgate/internal/errors"
	"parkgate/internal/service"
)

// StatusHandler serves the public read-only endpoints: occupancy and rates.
type StatusHandler struct {
	Admin *service.AdminService
	Rates service.RateConfig
}

func NewStatusHandler(admin *service.AdminService, rates service.RateConfig) *StatusHandler {
	return &StatusHandler{Admin: admin, Rates: rates}
}

func (h *StatusHandler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	occupancy, err := h.Admin.Occupancy()
	if err != nil {
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Could not get occupancy")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(occupancy)
}

func (h *StatusHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	var rates []entities.RateResponse
	for category, rate := range h.Rates.HourlyRates {
		rates = append(rates, entities.RateResponse{
			Category:      category,
			RatePerHour:   rate,
			FreeMinutes:   int(service.FreePeriod.Minutes()),
			LoyaltyFactor: service.LoyaltyFactor,
		})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Category < rates[j].Category })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rates)
}
