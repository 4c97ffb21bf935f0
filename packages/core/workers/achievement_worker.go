package workers

import (
	"context"
	"log"

	"core/services"
)

// AchievementWorker evaluates badges off the request path. Match
// confirmations push user ids onto a buffered channel; a single goroutine
// drains it. Evaluation is idempotent, so a dropped notification is only a
// delay — the hourly sweep catches it.
type AchievementWorker struct {
	achievements *services.AchievementService
	queue        chan uint
}

func NewAchievementWorker(achievements *services.AchievementService) *AchievementWorker {
	return &AchievementWorker{
		achievements: achievements,
		queue:        make(chan uint, 256),
	}
}

// Notify enqueues users for evaluation. Never blocks: if the queue is full
// the notification is dropped and the cron sweep will pick the user up.
func (w *AchievementWorker) Notify(userIDs ...uint) {
	for _, id := range userIDs {
		select {
		case w.queue <- id:
		default:
			log.Printf("achievement worker: queue full, deferring user %d to sweep", id)
		}
	}
}

func (w *AchievementWorker) Start(ctx context.Context) {
	log.Println("Starting achievement evaluation worker…")
	go w.run(ctx)
}

func (w *AchievementWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("Achievement worker stopped")
			return
		case userID := <-w.queue:
			result, err := w.achievements.Evaluate(userID)
			if err != nil {
				log.Printf("achievement worker: user %d: %v", userID, err)
				continue
			}
			for _, badge := range result.NewBadges {
				log.Printf("Badge awarded: %s → user %d", badge.ID, userID)
			}
			if result.LeveledUp {
				log.Printf("User %d reached level %d", userID, result.Level)
			}
		}
	}
}
