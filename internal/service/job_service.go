package service

import (
	"fmt"
	"log"
	"time"

	"parkgate/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// ReconcileOccupiedSpots frees spots that are marked occupied without any
// open ticket referencing them. A closed ticket is the source of truth for
// billing, so when a release failed after closing, this sweep heals the spot
// instead of touching the ticket.
func (s *JobService) ReconcileOccupiedSpots() error {
	log.Println("Cron Job: Checking for occupied spots without an open ticket...")

	spotIDs, err := s.Repo.GetOrphanOccupiedSpotIDs()
	if err != nil {
		return fmt.Errorf("cron job: failed to get orphan occupied spots: %w", err)
	}

	if len(spotIDs) == 0 {
		log.Println("Cron Job: No orphan occupied spots found.")
		return nil
	}

	log.Printf("Cron Job: Found %d orphan occupied spots. IDs: %v", len(spotIDs), spotIDs)

	if err := s.Repo.FreeSpots(spotIDs); err != nil {
		return fmt.Errorf("cron job: failed to free orphan occupied spots: %w", err)
	}
	return nil
}

// ReportStaleTickets logs tickets that have been open longer than the given
// duration so an operator can follow up on vehicles that never exited.
func (s *JobService) ReportStaleTickets(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan)
	codes, err := s.Repo.GetTicketsOpenSince(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to list stale open tickets: %w", err)
	}
	if len(codes) == 0 {
		return nil
	}
	log.Printf("Cron Job: %d tickets open for more than %s: %v", len(codes), olderThan, codes)
	return nil
}
