package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"parkgate/internal/api"
	"parkgate/internal/auth"
	"parkgate/internal/config"
	"parkgate/internal/repository"
	"parkgate/internal/service"
)

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
	jobRepo := repository.NewJobRepository(db)

	fares := service.NewFareCalculator(cfg.RateConfig())
	allocator := service.NewSpotAllocator(spotRepo)
	sender := service.NewSenderService()
	parkingSvc := service.NewParkingService(ticketRepo, allocator, fares, sender)
	adminSvc := service.NewAdminService(ticketRepo, spotRepo)
	jobSvc := service.NewJobService(jobRepo)

	c := cron.New()
	c.AddFunc("15 3 * * *", func() {
		if err := jobSvc.ReconcileOccupiedSpots(); err != nil {
			log.Printf("Error reconciling occupied spots: %v", err)
		}
		if err := jobSvc.ReportStaleTickets(cfg.StaleTicketAfter); err != nil {
			log.Printf("Error reporting stale tickets: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	parkingHandler := api.NewParkingHandler(parkingSvc)
	statusHandler := api.NewStatusHandler(adminSvc, cfg.RateConfig())
	adminHandler := api.NewAdminHandler(adminSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/entries", parkingHandler.RegisterEntry).Methods("POST")
	r.HandleFunc("/api/exits", parkingHandler.RegisterExit).Methods("POST")
	r.HandleFunc("/api/occupancy", statusHandler.GetOccupancy).Methods("GET")
	r.HandleFunc("/api/rates", statusHandler.GetRates).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.AdminToken))
	admin.HandleFunc("/tickets", adminHandler.ListTickets).Methods("GET")
	admin.HandleFunc("/tickets/open", adminHandler.ListOpenTickets).Methods("GET")
	admin.HandleFunc("/spots/{category}/capacity", adminHandler.UpdateSpotCapacity).Methods("PUT")

	cors := handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
