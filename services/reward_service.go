package services

import (
	"errors"
	"log"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WinnerRewardAmount is credited to a battle's winner on completion. The
// actual token transfer happens in the external payout backend; this service
// only marks the battle pending.
const WinnerRewardAmount = 200

type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

// IssueReward marks the pending reward on a completed battle. If the winner's
// wallet cannot be resolved the battle keeps reward_status=none; the caller is
// expected to swallow the error (battle completion must not roll back).
func (s *RewardService) IssueReward(battle *models.Battle, winnerID string) error {
	var winner models.User
	if err := s.DB.First(&winner, "id = ?", winnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("winner wallet not found")
		}
		return err
	}

	battle.RewardAmount = WinnerRewardAmount
	battle.RewardStatus = models.RewardStatusPending

	if err := s.DB.Model(&models.Battle{}).
		Where("id = ?", battle.ID).
		Updates(map[string]interface{}{
			"reward_amount": battle.RewardAmount,
			"reward_status": battle.RewardStatus,
		}).Error; err != nil {
		// Leave the in-memory battle marked pending; the row will disagree
		// until the payout worker or a retry reconciles it.
		return err
	}

	log.Printf("💰 Reward %d marked pending for battle %s (winner %s, wallet %s)",
		WinnerRewardAmount, battle.ID, winnerID, winner.WalletAddress)
	return nil
}

// GetPendingRewards lists completed battles whose payout has not settled yet.
// Used by dashboards; the payout worker queries the store directly.
func (s *RewardService) GetPendingRewards(c *fiber.Ctx) error {
	var battles []models.Battle
	if err := s.DB.
		Where("status = ? AND reward_status = ?", models.BattleStatusCompleted, models.RewardStatusPending).
		Order("created_at ASC").
		Find(&battles).Error; err != nil {
		log.Printf("DB Error listing pending rewards: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"battles": battles})
}
