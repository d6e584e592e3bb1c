package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"parkgate/internal/db"
	"parkgate/internal/repository"
)

// fakeSpotStore is an in-memory SpotStore with the same conditional-update
// semantics as the SQL gateway. A mutex guards it so concurrent allocation
// tests exercise real interleavings.
type fakeSpotStore struct {
	mu    sync.Mutex
	spots map[int]*db.ParkingSpot

	reserveErrs []error // popped per Reserve call before normal behavior
	releaseErr  error
}

func newFakeSpotStore(categories map[int]string) *fakeSpotStore {
	spots := make(map[int]*db.ParkingSpot, len(categories))
	for id, category := range categories {
		spots[id] = &db.ParkingSpot{ID: id, Category: category}
	}
	return &fakeSpotStore{spots: spots}
}

func (f *fakeSpotStore) NextAvailable(category string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.spots))
	for id := range f.spots {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if s := f.spots[id]; s.Category == category && !s.Occupied {
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (f *fakeSpotStore) Reserve(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reserveErrs) > 0 {
		err := f.reserveErrs[0]
		f.reserveErrs = f.reserveErrs[1:]
		if err != nil {
			return err
		}
	}
	s, ok := f.spots[id]
	if !ok || s.Occupied {
		return fmt.Errorf("spot %d is not free or does not exist: %w", id, repository.ErrConflict)
	}
	s.Occupied = true
	return nil
}

func (f *fakeSpotStore) Release(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseErr != nil {
		return f.releaseErr
	}
	s, ok := f.spots[id]
	if !ok || !s.Occupied {
		return fmt.Errorf("spot %d is not occupied or does not exist: %w", id, repository.ErrConflict)
	}
	s.Occupied = false
	return nil
}

func (f *fakeSpotStore) occupied(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spots[id].Occupied
}

// fakeTicketStore is an in-memory TicketStore.
type fakeTicketStore struct {
	mu      sync.Mutex
	nextID  int
	tickets []*db.Ticket

	saveErr   error
	updateErr error
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{}
}

func (f *fakeTicketStore) Save(t *db.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	t.ID = f.nextID
	stored := *t
	f.tickets = append(f.tickets, &stored)
	return nil
}

func (f *fakeTicketStore) GetOpenByVehicle(vehicleReg string) (*db.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *db.Ticket
	for _, t := range f.tickets {
		if t.VehicleReg == vehicleReg && t.ExitTime == nil {
			if latest == nil || t.EntryTime.After(latest.EntryTime) {
				latest = t
			}
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeTicketStore) Update(t *db.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, stored := range f.tickets {
		if stored.ID == t.ID && stored.ExitTime == nil {
			exit := *t.ExitTime
			stored.ExitTime = &exit
			stored.Price = t.Price
			return nil
		}
	}
	return fmt.Errorf("ticket %s is already closed or does not exist: %w", t.Code, repository.ErrConflict)
}

func (f *fakeTicketStore) CountClosedByVehicle(vehicleReg string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.tickets {
		if t.VehicleReg == vehicleReg && t.ExitTime != nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketStore) addClosed(vehicleReg, category string, entry time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	exit := entry.Add(time.Hour)
	f.tickets = append(f.tickets, &db.Ticket{
		ID:         f.nextID,
		Code:       fmt.Sprintf("closed-%d", f.nextID),
		VehicleReg: vehicleReg,
		Category:   category,
		EntryTime:  entry,
		ExitTime:   &exit,
		Price:      1,
	})
}

func (f *fakeTicketStore) openTickets() []db.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	var open []db.Ticket
	for _, t := range f.tickets {
		if t.ExitTime == nil {
			open = append(open, *t)
		}
	}
	return open
}
