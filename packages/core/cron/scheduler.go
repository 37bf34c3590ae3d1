package cron

import (
	"log"
	"os"
	"strconv"
	"time"

	"core/services"

	"github.com/robfig/cron/v3"
)

const defaultPendingTTLHours = 24

type Scheduler struct {
	cron               *cron.Cron
	reservationService *services.ReservationService
	pendingTTL         time.Duration
}

func NewScheduler(reservationService *services.ReservationService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	ttlHours := defaultPendingTTLHours
	if raw := os.Getenv("RESERVATION_PENDING_TTL_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttlHours = parsed
		}
	}

	return &Scheduler{
		cron:               c,
		reservationService: reservationService,
		pendingTTL:         time.Duration(ttlHours) * time.Hour,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Schedule reservation expiry job to run every hour
	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runReservationExpiry)
	if err != nil {
		log.Printf("Error scheduling reservation expiry job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runReservationExpiry cancels pending reservations that were never paid
func (s *Scheduler) runReservationExpiry() {
	log.Println("Running reservation expiry job...")

	expired, err := s.reservationService.ExpireStalePending(s.pendingTTL)
	if err != nil {
		log.Printf("Error during reservation expiry: %v", err)
		return
	}

	if expired == 0 {
		log.Println("No stale pending reservations to cancel")
		return
	}

	log.Printf("Cancelled %d stale pending reservations", expired)
}

// RunNow manually triggers the reservation expiry job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering reservation expiry job...")
	s.runReservationExpiry()
}
