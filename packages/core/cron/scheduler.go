package cron

import (
	"log"

	"auth/utils"
	"core/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Scheduler struct {
	cron         *cron.Cron
	db           *gorm.DB
	achievements *services.AchievementService
}

func NewScheduler(db *gorm.DB, achievements *services.AchievementService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:         c,
		db:           db,
		achievements: achievements,
	}
}

// Start registers and starts all scheduled jobs.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Hourly achievement sweep. The post-confirmation worker is
	// best-effort, so this is the retry path for missed evaluations.
	if _, err := s.cron.AddFunc("0 0 * * * *", s.runAchievementSweep); err != nil {
		log.Printf("Error scheduling achievement sweep: %v", err)
		return err
	}

	// Purge expired refresh tokens once a day at 03:30.
	if _, err := s.cron.AddFunc("0 30 3 * * *", s.runTokenCleanup); err != nil {
		log.Printf("Error scheduling token cleanup: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runAchievementSweep() {
	log.Println("Running achievement sweep...")
	s.achievements.EvaluateAll()
	log.Println("Achievement sweep completed")
}

func (s *Scheduler) runTokenCleanup() {
	log.Println("Running refresh token cleanup...")
	if err := utils.CleanExpiredTokens(s.db); err != nil {
		log.Printf("Error cleaning expired tokens: %v", err)
		return
	}
	log.Println("Refresh token cleanup completed")
}

// RunNow manually triggers the achievement sweep (useful for testing).
func (s *Scheduler) RunNow() {
	s.runAchievementSweep()
}
