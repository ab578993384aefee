package services

import (
	"errors"
	"log"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StakeService struct {
	DB *gorm.DB
}

func NewStakeService(db *gorm.DB) *StakeService {
	return &StakeService{DB: db}
}

// RecordStake links an on-chain stake transaction to a battle. The hash is
// unique: replaying the same transaction against any battle is a 409.
func (s *StakeService) RecordStake(c *fiber.Ctx) error {
	var req struct {
		BattleID        string   `json:"battle_id"`
		PlayerID        string   `json:"player_id"`
		Amount          *float64 `json:"amount"`
		TransactionHash string   `json:"transaction_hash"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BattleID == "" || req.PlayerID == "" || req.Amount == nil || req.TransactionHash == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: battle_id, player_id, amount, transaction_hash"})
	}

	var battle models.Battle
	if err := s.DB.First(&battle, "id = ?", req.BattleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Battle not found"})
		}
		log.Printf("DB Error fetching battle: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	isPlayer1 := req.PlayerID == battle.Player1ID
	isPlayer2 := battle.Player2ID != nil && req.PlayerID == *battle.Player2ID
	if !isPlayer1 && !isPlayer2 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Player is not a participant in this battle"})
	}

	var existing models.StakeTransaction
	if err := s.DB.First(&existing, "transaction_hash = ?", req.TransactionHash).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Transaction hash already recorded"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("DB Error checking stake hash: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	stake := models.StakeTransaction{
		ID:              uuid.NewString(),
		BattleID:        req.BattleID,
		PlayerID:        req.PlayerID,
		Amount:          *req.Amount,
		TransactionHash: req.TransactionHash,
		Status:          models.StakeStatusPending,
	}

	if err := s.DB.Create(&stake).Error; err != nil {
		log.Printf("DB Error recording stake: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record stake"})
	}

	// Link the hash back onto the battle's per-player column
	column := "player1_stake_tx"
	if isPlayer2 {
		column = "player2_stake_tx"
	}
	if err := s.DB.Model(&models.Battle{}).
		Where("id = ?", battle.ID).
		Update(column, req.TransactionHash).Error; err != nil {
		log.Printf("⚠️ Failed to link stake %s to battle %s: %v", stake.ID, battle.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"stake_transaction": stake})
}

// GetStake looks a stake transaction up by its on-chain hash.
func (s *StakeService) GetStake(c *fiber.Ctx) error {
	hash := c.Query("transaction_hash")
	if hash == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "transaction_hash query parameter required"})
	}

	var stake models.StakeTransaction
	if err := s.DB.First(&stake, "transaction_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Stake transaction not found"})
		}
		log.Printf("DB Error fetching stake: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"stake_transaction": stake})
}
