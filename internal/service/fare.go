package service

import (
	"errors"
	"fmt"
	"time"

	"parkgate/internal/utils"
)

var (
	// ErrInvalidInterval means the exit time is missing or earlier than the
	// entry time; the stay must not be billed.
	ErrInvalidInterval = errors.New("exit time is missing or earlier than entry time")
	// ErrUnknownCategory means no hourly rate is configured for the category.
	ErrUnknownCategory = errors.New("no hourly rate configured for vehicle category")
)

const (
	DefaultCarRatePerHour  = 1.5
	DefaultBikeRatePerHour = 1.0

	// FreePeriod is billed at zero regardless of category.
	FreePeriod = 30 * time.Minute
	// LoyaltyFactor is the flat 5% reduction for recurrent vehicles.
	LoyaltyFactor = 0.95
)

// RateConfig holds the fixed hourly rate per vehicle category.
type RateConfig struct {
	HourlyRates map[string]float64
}

func DefaultRateConfig() RateConfig {
	return RateConfig{
		HourlyRates: map[string]float64{
			utils.CategoryCar:  DefaultCarRatePerHour,
			utils.CategoryBike: DefaultBikeRatePerHour,
		},
	}
}

// FareCalculator computes parking charges from the rate configuration it was
// built with. It never reads ambient state.
type FareCalculator struct {
	rates map[string]float64
}

func NewFareCalculator(cfg RateConfig) *FareCalculator {
	rates := make(map[string]float64, len(cfg.HourlyRates))
	for category, rate := range cfg.HourlyRates {
		rates[category] = rate
	}
	return &FareCalculator{rates: rates}
}

// ComputeFare prices a stay. Stays of at most FreePeriod cost exactly zero;
// longer stays pay the fractional number of hours times the category rate,
// reduced by LoyaltyFactor for recurrent vehicles. The discount is applied
// last, so a recurrent vehicle inside the free period still pays zero.
func (f *FareCalculator) ComputeFare(entryTime, exitTime time.Time, category string, recurrent bool) (float64, error) {
	if exitTime.IsZero() || exitTime.Before(entryTime) {
		return 0, fmt.Errorf("%w: entry %s, exit %s", ErrInvalidInterval, entryTime, exitTime)
	}
	rate, ok := f.rates[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	duration := exitTime.Sub(entryTime)
	if duration <= FreePeriod {
		return 0, nil
	}

	price := duration.Hours() * rate
	if recurrent {
		price *= LoyaltyFactor
	}
	return price, nil
}
