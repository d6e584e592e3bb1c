package main

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"parkgate/internal/config"
	"parkgate/internal/repository"
	"parkgate/internal/service"
	"parkgate/internal/utils"
)

// Interactive counterpart of the HTTP server: the attendant drives entries
// and exits from a terminal at the gate.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	spotRepo := repository.NewSpotRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	fares := service.NewFareCalculator(cfg.RateConfig())
	allocator := service.NewSpotAllocator(spotRepo)
	svc := service.NewParkingService(ticketRepo, allocator, fares, service.NewSenderService())

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("1 - Vehicle entry")
		fmt.Println("2 - Vehicle exit")
		fmt.Println("3 - Quit")
		fmt.Print("> ")

		choice, err := readLine(reader)
		if err != nil {
			fmt.Println()
			return
		}
		switch choice {
		case "1":
			processEntry(reader, svc)
		case "2":
			processExit(reader, svc)
		case "3":
			return
		default:
			fmt.Println("Unsupported option. Please enter 1, 2 or 3.")
		}
	}
}

func processEntry(reader *bufio.Reader, svc *service.ParkingService) {
	fmt.Print("Vehicle category (CAR/BIKE): ")
	input, err := readLine(reader)
	if err != nil {
		return
	}
	category, err := utils.ParseVehicleCategory(input)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print("Vehicle registration number: ")
	vehicleReg, err := readLine(reader)
	if err != nil {
		return
	}
	if vehicleReg == "" {
		fmt.Println("Registration number must not be empty.")
		return
	}

	ticket, err := svc.RegisterEntry(service.EntryRequest{VehicleReg: vehicleReg, Category: category}, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNoSpotAvailable) || errors.Is(err, service.ErrAllocationRace) {
			fmt.Println("Sorry, no spot is available for this category right now.")
			return
		}
		fmt.Printf("Could not register entry: %v\n", err)
		return
	}
	fmt.Printf("Please park in spot %d. Ticket %s, entry at %s.\n",
		ticket.SpotID, ticket.Code, ticket.EntryTime.Format("02 Jan 2006 15:04:05"))
}

func processExit(reader *bufio.Reader, svc *service.ParkingService) {
	fmt.Print("Vehicle registration number: ")
	vehicleReg, err := readLine(reader)
	if err != nil {
		return
	}
	if vehicleReg == "" {
		fmt.Println("Registration number must not be empty.")
		return
	}

	ticket, err := svc.RegisterExit(vehicleReg, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNoOpenTicket) {
			fmt.Println("No open ticket found for this vehicle.")
			return
		}
		fmt.Printf("Could not register exit: %v\n", err)
		return
	}
	fmt.Printf("Please pay %.2f. Spot %d is now free. Goodbye!\n", ticket.Price, ticket.SpotID)
}

// readLine returns the next trimmed input line. The error is non-nil once
// stdin is exhausted, so callers can stop instead of looping on empty reads.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
