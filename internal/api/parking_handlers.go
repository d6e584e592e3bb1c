package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	httperrors "parkgate/internal/errors"
	"parkgate/internal/service"
	"parkgate/internal/utils"
)

type ParkingHandler struct {
	Service *service.ParkingService
}

func NewParkingHandler(svc *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{Service: svc}
}

func (h *ParkingHandler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.VehicleReg == "" {
		httperrors.WriteJSON(w, http.StatusBadRequest, "vehicle_reg is required")
		return
	}
	category, err := utils.ParseVehicleCategory(req.Category)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := h.Service.RegisterEntry(service.EntryRequest{
		VehicleReg:  req.VehicleReg,
		Category:    category,
		DriverEmail: req.DriverEmail,
		DriverPhone: req.DriverPhone,
	}, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSpotAvailable):
			httperrors.WriteJSON(w, http.StatusConflict, "No spot available for this category")
		case errors.Is(err, service.ErrAllocationRace):
			httperrors.WriteJSON(w, http.StatusConflict, "All candidate spots were taken, try again")
		default:
			httperrors.WriteJSON(w, http.StatusInternalServerError, "Could not register entry")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryResponse{
		TicketCode: ticket.Code,
		SpotID:     ticket.SpotID,
		EntryTime:  ticket.EntryTime,
		Message:    "Vehicle parked.",
	})
}

func (h *ParkingHandler) RegisterExit(w http.ResponseWriter, r *http.Request) {
	var req ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.VehicleReg == "" {
		httperrors.WriteJSON(w, http.StatusBadRequest, "vehicle_reg is required")
		return
	}

	ticket, err := h.Service.RegisterExit(req.VehicleReg, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoOpenTicket):
			httperrors.WriteJSON(w, http.StatusNotFound, "No open ticket for this vehicle")
		case errors.Is(err, service.ErrInvalidInterval):
			httperrors.WriteJSON(w, http.StatusUnprocessableEntity, "Exit time is earlier than the recorded entry time")
		default:
			httperrors.WriteJSON(w, http.StatusInternalServerError, "Could not register exit")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExitResponse{
		TicketCode: ticket.Code,
		SpotID:     ticket.SpotID,
		Fare:       ticket.Price,
		EntryTime:  ticket.EntryTime,
		ExitTime:   *ticket.ExitTime,
		Message:    "Vehicle exited.",
	})
}
