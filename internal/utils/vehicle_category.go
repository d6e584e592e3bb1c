package utils

import (
	"fmt"
	"strings"
)

const (
	CategoryCar  = "CAR"
	CategoryBike = "BIKE"
)

// ParseVehicleCategory normalizes user input ("car", "Bike", ...) to one of
// the known category constants.
func ParseVehicleCategory(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case CategoryCar:
		return CategoryCar, nil
	case CategoryBike:
		return CategoryBike, nil
	default:
		return "", fmt.Errorf("unknown vehicle category %q", s)
	}
}
