package services

import (
	"errors"
	"log"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoveService struct {
	DB      *gorm.DB
	Rewards *RewardService
}

func NewMoveService(db *gorm.DB, rewards *RewardService) *MoveService {
	return &MoveService{DB: db, Rewards: rewards}
}

// SubmitMove records one turn and advances the battle state machine:
// in_progress → in_progress (turn flips) or in_progress → completed (terminal).
// Moves against a completed battle are rejected with a 409.
//
// Combat math is client-authoritative: damage_dealt and target_hp_remaining are
// taken as reported, without checking them against beast stats or whose turn it
// is. That trust boundary is deliberate for this game.
func (s *MoveService) SubmitMove(c *fiber.Ctx) error {
	var req struct {
		BattleID          string `json:"battle_id"`
		PlayerID          string `json:"player_id"`
		MoveID            string `json:"move_id"`
		TurnNumber        *int   `json:"turn_number"`
		DamageDealt       int    `json:"damage_dealt"`
		TargetHPRemaining int    `json:"target_hp_remaining"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BattleID == "" || req.PlayerID == "" || req.MoveID == "" || req.TurnNumber == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: battle_id, player_id, move_id, turn_number"})
	}

	var battle models.Battle
	if err := s.DB.First(&battle, "id = ?", req.BattleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Battle not found"})
		}
		log.Printf("DB Error fetching battle %s: %v", req.BattleID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	// completed is terminal: a replayed winning move must not rewrite the
	// winner or re-trigger reward issuance
	if battle.Status == models.BattleStatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Battle is already completed"})
	}

	battleMove := models.BattleMove{
		ID:                uuid.NewString(),
		BattleID:          req.BattleID,
		PlayerID:          req.PlayerID,
		MoveID:            req.MoveID,
		TurnNumber:        *req.TurnNumber,
		DamageDealt:       req.DamageDealt,
		TargetHPRemaining: req.TargetHPRemaining,
	}

	if err := s.DB.Create(&battleMove).Error; err != nil {
		log.Printf("DB Error recording battle move: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record move"})
	}

	if req.TargetHPRemaining <= 0 {
		// Terminal: submitting player wins. Reward issuance is best-effort —
		// the battle stays completed even when issuance fails.
		battle.Status = models.BattleStatusCompleted
		battle.WinnerID = &req.PlayerID
		battle.CurrentTurn = nil

		if err := s.DB.Save(&battle).Error; err != nil {
			log.Printf("DB Error completing battle %s: %v", battle.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update battle"})
		}

		if err := s.Rewards.IssueReward(&battle, req.PlayerID); err != nil {
			log.Printf("⚠️ Reward issuance failed for battle %s: %v", battle.ID, err)
		}

		return c.JSON(fiber.Map{
			"battleMove":    battleMove,
			"battle_ended":  true,
			"winner_id":     req.PlayerID,
			"reward_amount": battle.RewardAmount,
			"reward_status": battle.RewardStatus,
		})
	}

	// Continuation: turn passes to the other participant. For PvE the opposing
	// slot is null, which marks the scripted enemy's turn.
	if battle.CurrentTurn != nil && *battle.CurrentTurn == battle.Player1ID {
		battle.CurrentTurn = battle.Player2ID
	} else {
		battle.CurrentTurn = &battle.Player1ID
	}

	if err := s.DB.Save(&battle).Error; err != nil {
		log.Printf("DB Error switching turn for battle %s: %v", battle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update battle"})
	}

	return c.JSON(fiber.Map{
		"battleMove":   battleMove,
		"battle_ended": false,
	})
}

// ListMoves returns the append-only move log for a battle, oldest turn first,
// with move metadata joined in.
func (s *MoveService) ListMoves(c *fiber.Ctx) error {
	battleID := c.Query("battle_id")
	if battleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "battle_id query parameter required"})
	}

	var moves []models.BattleMove
	if err := s.DB.
		Where("battle_id = ?", battleID).
		Order("turn_number ASC").
		Find(&moves).Error; err != nil {
		log.Printf("DB Error listing moves: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	type moveEntry struct {
		models.BattleMove
		Move *models.Move `json:"move,omitempty"`
	}

	entries := make([]moveEntry, len(moves))
	for i, m := range moves {
		entries[i] = moveEntry{BattleMove: m}
		var meta models.Move
		if err := s.DB.First(&meta, "id = ?", m.MoveID).Error; err == nil {
			entries[i].Move = &meta
		}
	}

	return c.JSON(fiber.Map{"moves": entries})
}
