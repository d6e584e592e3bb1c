package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"parkgate/internal/db"
	"parkgate/internal/repository"
)

// ErrNoOpenTicket means an exit was requested for a vehicle that is not
// currently parked.
var ErrNoOpenTicket = errors.New("no open ticket for vehicle")

// TicketStore is the slice of the persistence gateway the lifecycle needs.
type TicketStore interface {
	Save(t *db.Ticket) error
	GetOpenByVehicle(vehicleReg string) (*db.Ticket, error)
	Update(t *db.Ticket) error
	CountClosedByVehicle(vehicleReg string) (int, error)
}

// ParkingService owns the ticket lifecycle: it is the only component that
// creates or closes tickets, and it drives the allocator and the fare
// calculator on entry and exit.
type ParkingService struct {
	tickets   TicketStore
	allocator *SpotAllocator
	fares     *FareCalculator
	sender    *SenderService
}

func NewParkingService(tickets TicketStore, allocator *SpotAllocator, fares *FareCalculator, sender *SenderService) *ParkingService {
	return &ParkingService{
		tickets:   tickets,
		allocator: allocator,
		fares:     fares,
		sender:    sender,
	}
}

// EntryRequest carries what a vehicle entry needs. Driver contact fields are
// optional and only used to send the exit receipt.
type EntryRequest struct {
	VehicleReg  string
	Category    string
	DriverEmail string
	DriverPhone string
}

// RegisterEntry allocates a spot and opens a ticket. If the ticket cannot be
// persisted the reservation is rolled back so the spot never stays occupied
// for a ticket that was never recorded.
func (s *ParkingService) RegisterEntry(req EntryRequest, entryTime time.Time) (*db.Ticket, error) {
	spotID, err := s.allocator.Allocate(req.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ticket := &db.Ticket{
		Code:        uuid.NewString(),
		SpotID:      spotID,
		Category:    req.Category,
		VehicleReg:  req.VehicleReg,
		DriverEmail: req.DriverEmail,
		DriverPhone: req.DriverPhone,
		Price:       0,
		EntryTime:   entryTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Save(ticket); err != nil {
		if relErr := s.allocator.Release(spotID); relErr != nil {
			log.Printf("Spot %d could not be released after failed ticket save: %v", spotID, relErr)
		}
		return nil, fmt.Errorf("error saving ticket for vehicle %s: %w", req.VehicleReg, err)
	}

	log.Printf("Vehicle %s entered, ticket %s, spot %d", req.VehicleReg, ticket.Code, spotID)
	return ticket, nil
}

// RegisterExit closes the vehicle's open ticket, prices the stay and frees
// the spot. The ticket update is the commit point: if it fails the exit did
// not happen, and if the later spot release fails the closed ticket stands
// and the inconsistency is reported for the reconciliation sweep.
func (s *ParkingService) RegisterExit(vehicleReg string, exitTime time.Time) (*db.Ticket, error) {
	ticket, err := s.tickets.GetOpenByVehicle(vehicleReg)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoOpenTicket
		}
		return nil, fmt.Errorf("error looking up open ticket for vehicle %s: %w", vehicleReg, err)
	}

	// Loyalty is derived from history at every exit, never cached.
	closedCount, err := s.tickets.CountClosedByVehicle(vehicleReg)
	if err != nil {
		return nil, fmt.Errorf("error counting closed tickets for vehicle %s: %w", vehicleReg, err)
	}
	recurrent := closedCount > 0

	price, err := s.fares.ComputeFare(ticket.EntryTime, exitTime, ticket.Category, recurrent)
	if err != nil {
		return nil, err
	}

	ticket.ExitTime = &exitTime
	ticket.Price = price
	if err := s.tickets.Update(ticket); err != nil {
		ticket.ExitTime = nil
		ticket.Price = 0
		return nil, fmt.Errorf("error closing ticket %s: %w", ticket.Code, err)
	}

	if err := s.allocator.Release(ticket.SpotID); err != nil {
		log.Printf("Inconsistency: ticket %s closed but spot %d still occupied: %v", ticket.Code, ticket.SpotID, err)
	}

	log.Printf("Vehicle %s exited, ticket %s, fare %.2f (recurrent=%t)", vehicleReg, ticket.Code, price, recurrent)
	if s.sender != nil {
		s.sender.SendExitReceipt(ticket)
	}
	return ticket, nil
}
