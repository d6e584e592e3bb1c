package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/entities"
	"parkgate/internal/service"
)

type stubAdminTicketStore struct {
	all  []entities.TicketResponse
	open []entities.TicketResponse
}

func (s *stubAdminTicketStore) ListTickets(vehicleReg, status string) ([]entities.TicketResponse, error) {
	return s.all, nil
}

func (s *stubAdminTicketStore) ListOpen() ([]entities.TicketResponse, error) {
	return s.open, nil
}

type stubAdminSpotStore struct{}

func (s *stubAdminSpotStore) Occupancy() ([]entities.CategoryOccupancy, error) {
	return nil, nil
}

func (s *stubAdminSpotStore) ResizeCategory(category string, total int) error {
	return nil
}

func newAdminRouter(tickets *stubAdminTicketStore) *mux.Router {
	handler := NewAdminHandler(service.NewAdminService(tickets, &stubAdminSpotStore{}))
	r := mux.NewRouter()
	r.HandleFunc("/admin/tickets", handler.ListTickets).Methods("GET")
	r.HandleFunc("/admin/tickets/open", handler.ListOpenTickets).Methods("GET")
	return r
}

func TestListOpenTicketsEndpoint(t *testing.T) {
	entry := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	tickets := &stubAdminTicketStore{
		open: []entities.TicketResponse{
			{Code: "t-1", SpotID: 1, Category: "CAR", VehicleReg: "ABCDEF", EntryTime: entry, Status: "open"},
			{Code: "t-2", SpotID: 4, Category: "BIKE", VehicleReg: "GHIJKL", EntryTime: entry.Add(time.Hour), Status: "open"},
		},
	}
	router := newAdminRouter(tickets)

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got entities.TicketsList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Tickets, 2)
	assert.Equal(t, "t-1", got.Tickets[0].Code)
	assert.Equal(t, "open", got.Tickets[0].Status)
}

func TestListTicketsRejectsUnknownStatus(t *testing.T) {
	router := newAdminRouter(&stubAdminTicketStore{})

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets?status=parked", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
