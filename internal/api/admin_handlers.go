package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	httperrors "parkgate/internal/errors"
	"parkgate/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	vehicleReg := r.URL.Query().Get("vehicle_reg")
	status := r.URL.Query().Get("status")
	if status != "" && status != "open" && status != "closed" {
		httperrors.WriteJSON(w, http.StatusBadRequest, "status must be 'open' or 'closed'")
		return
	}

	tickets, err := h.Service.ListTickets(vehicleReg, status)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Database error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tickets)
}

func (h *AdminHandler) ListOpenTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Service.ListOpenTickets()
	if err != nil {
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Database error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tickets)
}

func (h *AdminHandler) UpdateSpotCapacity(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	var req struct {
		TotalSpots int `json:"total_spots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.Service.ResizeCategory(category, req.TotalSpots); err != nil {
		httperrors.WriteJSON(w, http.StatusConflict, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Spot capacity updated"})
}
