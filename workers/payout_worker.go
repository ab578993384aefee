package workers

import (
	"context"
	"errors"
	"log"
	"time"

	"arenarise-service/models"
	"arenarise-service/services"

	"gorm.io/gorm"
)

// PayoutWorker is the separate flow that settles pending rewards: it polls for
// completed battles with reward_status=pending and hands each one to the
// external payout backend. Battle completion is never blocked on this.
type PayoutWorker struct {
	db       *gorm.DB
	client   *services.PayoutClient
	interval time.Duration
}

func NewPayoutWorker(db *gorm.DB, client *services.PayoutClient) *PayoutWorker {
	return &PayoutWorker{
		db:       db,
		client:   client,
		interval: 30 * time.Second,
	}
}

func (w *PayoutWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Payout Worker (pending rewards → payout backend)…")
	go w.run(ctx)
}

func (w *PayoutWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.settleBatch(ctx); err != nil {
				log.Printf("[PAYOUT] ❌ Batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Payout Worker stopped")
			return
		}
	}
}

// settleBatch pushes every pending reward through the backend. Transport
// failures leave the row pending for the next sweep; explicit backend
// rejections mark it failed so it is not retried forever.
func (w *PayoutWorker) settleBatch(ctx context.Context) error {
	var battles []models.Battle
	if err := w.db.
		Where("status = ? AND reward_status = ?", models.BattleStatusCompleted, models.RewardStatusPending).
		Order("created_at ASC").
		Limit(50).
		Find(&battles).Error; err != nil {
		return err
	}

	if len(battles) == 0 {
		return nil
	}

	log.Printf("[PAYOUT] 📥 Settling %d pending reward(s)…", len(battles))

	for _, battle := range battles {
		if battle.WinnerID == nil {
			// Should not happen: winner is set whenever status = completed
			log.Printf("[PAYOUT] ⚠️ Battle %s pending without winner, marking failed", battle.ID)
			w.markReward(battle.ID, models.RewardStatusFailed)
			continue
		}

		var winner models.User
		if err := w.db.First(&winner, "id = ?", *battle.WinnerID).Error; err != nil {
			log.Printf("[PAYOUT] ⚠️ Winner lookup failed for battle %s: %v", battle.ID, err)
			w.markReward(battle.ID, models.RewardStatusFailed)
			continue
		}

		err := w.client.SendReward(ctx, winner.WalletAddress, battle.RewardAmount)
		switch {
		case err == nil:
			w.markReward(battle.ID, models.RewardStatusCompleted)
			log.Printf("[PAYOUT] ✅ Settled %.0f to %s (battle %s)", battle.RewardAmount, winner.WalletAddress, battle.ID)
		case errors.Is(err, services.ErrPayoutRejected):
			w.markReward(battle.ID, models.RewardStatusFailed)
			log.Printf("[PAYOUT] ❌ Backend rejected battle %s: %v", battle.ID, err)
		default:
			// Transient — leave pending for the next tick
			log.Printf("[PAYOUT] ⚠️ Transfer for battle %s deferred: %v", battle.ID, err)
		}
	}

	return nil
}

func (w *PayoutWorker) markReward(battleID string, status models.RewardStatus) {
	if err := w.db.Model(&models.Battle{}).
		Where("id = ?", battleID).
		Update("reward_status", status).Error; err != nil {
		log.Printf("[PAYOUT] ⚠️ Failed to mark battle %s %s: %v", battleID, status, err)
	}
}
