package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkgate/internal/db"
	"parkgate/internal/repository"
	"parkgate/internal/service"
	"parkgate/internal/utils"
)

// stubSpotStore holds a single car spot.
type stubSpotStore struct {
	occupied bool
}

func (s *stubSpotStore) NextAvailable(category string) (int, error) {
	if category != utils.CategoryCar || s.occupied {
		return 0, repository.ErrNotFound
	}
	return 1, nil
}

func (s *stubSpotStore) Reserve(id int) error {
	if s.occupied {
		return repository.ErrConflict
	}
	s.occupied = true
	return nil
}

func (s *stubSpotStore) Release(id int) error {
	if !s.occupied {
		return repository.ErrConflict
	}
	s.occupied = false
	return nil
}

// stubTicketStore holds at most one ticket.
type stubTicketStore struct {
	ticket *db.Ticket
}

func (s *stubTicketStore) Save(t *db.Ticket) error {
	t.ID = 1
	stored := *t
	s.ticket = &stored
	return nil
}

func (s *stubTicketStore) GetOpenByVehicle(vehicleReg string) (*db.Ticket, error) {
	if s.ticket == nil || s.ticket.VehicleReg != vehicleReg || s.ticket.ExitTime != nil {
		return nil, repository.ErrNotFound
	}
	copied := *s.ticket
	return &copied, nil
}

func (s *stubTicketStore) Update(t *db.Ticket) error {
	exit := *t.ExitTime
	s.ticket.ExitTime = &exit
	s.ticket.Price = t.Price
	return nil
}

func (s *stubTicketStore) CountClosedByVehicle(vehicleReg string) (int, error) {
	return 0, nil
}

func newTestHandler() (*ParkingHandler, *stubSpotStore) {
	spots := &stubSpotStore{}
	svc := service.NewParkingService(
		&stubTicketStore{},
		service.NewSpotAllocator(spots),
		service.NewFareCalculator(service.DefaultRateConfig()),
		nil,
	)
	return NewParkingHandler(svc), spots
}

func TestRegisterEntryHandler(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/entries",
		strings.NewReader(`{"vehicle_reg":"ABCDEF","category":"car"}`))
	rec := httptest.NewRecorder()
	handler.RegisterEntry(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp EntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.SpotID)
	assert.NotEmpty(t, resp.TicketCode)
}

func TestRegisterEntryHandlerRejectsBadCategory(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/entries",
		strings.NewReader(`{"vehicle_reg":"ABCDEF","category":"plane"}`))
	rec := httptest.NewRecorder()
	handler.RegisterEntry(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEntryHandlerFullLot(t *testing.T) {
	handler, spots := newTestHandler()
	spots.occupied = true

	req := httptest.NewRequest(http.MethodPost, "/api/entries",
		strings.NewReader(`{"vehicle_reg":"ABCDEF","category":"CAR"}`))
	rec := httptest.NewRecorder()
	handler.RegisterEntry(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterExitHandlerNoOpenTicket(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/exits",
		strings.NewReader(`{"vehicle_reg":"GHOST"}`))
	rec := httptest.NewRecorder()
	handler.RegisterExit(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryThenExitRoundTrip(t *testing.T) {
	handler, spots := newTestHandler()

	entryReq := httptest.NewRequest(http.MethodPost, "/api/entries",
		strings.NewReader(`{"vehicle_reg":"ABCDEF","category":"CAR"}`))
	entryRec := httptest.NewRecorder()
	handler.RegisterEntry(entryRec, entryReq)
	require.Equal(t, http.StatusOK, entryRec.Code)
	require.True(t, spots.occupied)

	exitReq := httptest.NewRequest(http.MethodPost, "/api/exits",
		strings.NewReader(`{"vehicle_reg":"ABCDEF"}`))
	exitRec := httptest.NewRecorder()
	handler.RegisterExit(exitRec, exitReq)

	require.Equal(t, http.StatusOK, exitRec.Code)
	var resp ExitResponse
	require.NoError(t, json.NewDecoder(exitRec.Body).Decode(&resp))
	assert.False(t, spots.occupied)
	assert.False(t, resp.ExitTime.IsZero())
	assert.GreaterOrEqual(t, resp.Fare, 0.0)
}
