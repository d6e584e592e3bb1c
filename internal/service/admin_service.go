package service

import (
	"parkgate/internal/entities"
	"parkgate/internal/utils"
)

// AdminTicketStore is the slice of the ticket gateway the admin surface needs.
type AdminTicketStore interface {
	ListTickets(vehicleReg, status string) ([]entities.TicketResponse, error)
	ListOpen() ([]entities.TicketResponse, error)
}

// AdminSpotStore is the slice of the spot gateway the admin surface needs.
type AdminSpotStore interface {
	Occupancy() ([]entities.CategoryOccupancy, error)
	ResizeCategory(category string, total int) error
}

// AdminService serves the operator-facing read and configuration operations.
type AdminService struct {
	Tickets AdminTicketStore
	Spots   AdminSpotStore
}

func NewAdminService(tickets AdminTicketStore, spots AdminSpotStore) *AdminService {
	return &AdminService{Tickets: tickets, Spots: spots}
}

func (s *AdminService) ListTickets(vehicleReg, status string) (*entities.TicketsList, error) {
	tickets, err := s.Tickets.ListTickets(vehicleReg, status)
	if err != nil {
		return nil, err
	}
	return &entities.TicketsList{Total: len(tickets), Tickets: tickets}, nil
}

// ListOpenTickets returns every vehicle currently parked, longest stay first.
func (s *AdminService) ListOpenTickets() (*entities.TicketsList, error) {
	tickets, err := s.Tickets.ListOpen()
	if err != nil {
		return nil, err
	}
	return &entities.TicketsList{Total: len(tickets), Tickets: tickets}, nil
}

func (s *AdminService) Occupancy() (*entities.OccupancyResponse, error) {
	categories, err := s.Spots.Occupancy()
	if err != nil {
		return nil, err
	}
	return &entities.OccupancyResponse{Categories: categories}, nil
}

func (s *AdminService) ResizeCategory(category string, total int) error {
	normalized, err := utils.ParseVehicleCategory(category)
	if err != nil {
		return err
	}
	return s.Spots.ResizeCategory(normalized, total)
}
