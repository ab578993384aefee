package services

import (
	"log"
	"time"

	"arenarise-service/models"

	"github.com/go-co-op/gocron/v2"
)

// staleRoomAge is how long a waiting room may sit unjoined before the sweeper
// drops it. Battles that started or finished are never touched.
const staleRoomAge = 10 * time.Minute

// sweepStaleRooms deletes waiting rooms older than staleRoomAge and reports
// how many matched. The delete is keyed on status, so a room joined mid-sweep
// survives.
func (s *RoomService) sweepStaleRooms() (int64, error) {
	cutoff := time.Now().Add(-staleRoomAge)
	result := s.DB.
		Where("status = ? AND created_at < ?", models.BattleStatusWaiting, cutoff).
		Delete(&models.Battle{})
	return result.RowsAffected, result.Error
}

// StartRoomSweeper runs sweepStaleRooms once a minute.
func (s *RoomService) StartRoomSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			removed, err := s.sweepStaleRooms()
			if err != nil {
				log.Printf("[SWEEPER] DB error: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("[SWEEPER] 🧹 Removed %d stale room(s)", removed)
			}
		}),
	)
}
