package service

import (
	"errors"
	"fmt"
	"log"

	"parkgate/internal/repository"
)

var (
	// ErrNoSpotAvailable is a normal outcome: the category is full.
	ErrNoSpotAvailable = errors.New("no free spot for the requested category")
	// ErrAllocationRace means every candidate spot was grabbed by a
	// concurrent entry within the retry budget.
	ErrAllocationRace = errors.New("spot was taken by a concurrent entry")
)

// allocationAttempts bounds the lookup-reserve loop: one retry after a lost
// race, then the entry is rejected.
const allocationAttempts = 2

// SpotStore is the slice of the persistence gateway the allocator needs.
// Reserve and Release must be conditional single-row updates so that
// check-then-act races are impossible at the storage level.
type SpotStore interface {
	NextAvailable(category string) (int, error)
	Reserve(id int) error
	Release(id int) error
}

type SpotAllocator struct {
	Store SpotStore
}

func NewSpotAllocator(store SpotStore) *SpotAllocator {
	return &SpotAllocator{Store: store}
}

// Allocate finds and reserves one free spot of the category. The returned
// spot is marked occupied; the caller owns releasing it.
func (a *SpotAllocator) Allocate(category string) (int, error) {
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		id, err := a.Store.NextAvailable(category)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, ErrNoSpotAvailable
			}
			return 0, fmt.Errorf("error finding available spot: %w", err)
		}

		err = a.Store.Reserve(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("error reserving spot %d: %w", id, err)
		}
		log.Printf("Spot %d was reserved concurrently, retrying allocation", id)
	}
	return 0, ErrAllocationRace
}

// Release frees a reserved spot. Releasing a spot that is not occupied is a
// logic error surfaced to the caller, never swallowed.
func (a *SpotAllocator) Release(id int) error {
	if err := a.Store.Release(id); err != nil {
		return fmt.Errorf("error releasing spot %d: %w", id, err)
	}
	return nil
}
