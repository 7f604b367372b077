package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sidhant-sriv/equipment-tracker/config"
	"github.com/sidhant-sriv/equipment-tracker/db"
	"github.com/sidhant-sriv/equipment-tracker/routes"
	"github.com/sidhant-sriv/equipment-tracker/scheduler"
)

func main() {
	log.Println("Starting Equipment Tracker...")

	// Load environment variables; a missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Set Gin to release mode in production
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	DB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := DB.DB()
	if err == nil {
		defer sqlDB.Close()
	}
	if err := db.MakeMigration(DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store := db.NewStore(DB)

	if cfg.RecurrenceSweepInterval > 0 {
		sched := scheduler.New(time.UTC)
		if err := scheduler.ScheduleRecurrenceSweep(sched, cfg.RecurrenceSweepInterval, store.Tasks); err != nil {
			log.Fatalf("schedule recurrence sweep: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	router, err := routes.NewRouter(routes.NewHandler(store))
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
