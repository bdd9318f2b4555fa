// services/scheduler.go
package services

import (
	"log"
	"time"

	"catfacts-api/models"
	"catfacts-api/utils"

	"github.com/go-co-op/gocron/v2"
)

// StartSessionReaper runs a periodic sweep that marks long-idle `playing`
// sessions as abandoned. Players who close the tab never send a terminal
// update, so without the sweep those rows stay "playing" forever.
func (s *GameService) StartSessionReaper() {
	staleHours := utils.GetenvInt("STALE_SESSION_HOURS", 24)

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-time.Duration(staleHours) * time.Hour)
			now := time.Now()

			res := s.DB.Model(&models.Game{}).
				Where("status = ? AND created_at <= ?", models.StatusPlaying, cutoff).
				Updates(map[string]interface{}{
					"status":       models.StatusAbandoned,
					"completed_at": now,
				})
			if res.Error != nil {
				log.Printf("[Reaper] DB error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Abandoned %d stale session(s) older than %dh", res.RowsAffected, staleHours)
			}
		}),
	)
}
