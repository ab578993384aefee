package services

import (
	"errors"
	"log"
	"time"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BattleService struct {
	DB *gorm.DB
}

func NewBattleService(db *gorm.DB) *BattleService {
	return &BattleService{DB: db}
}

// battleDetail is the battle row joined with participant and beast views.
type battleDetail struct {
	models.Battle
	Player1 *models.User  `json:"player1,omitempty"`
	Player2 *models.User  `json:"player2,omitempty"`
	Beast1  *models.Beast `json:"beast1,omitempty"`
	Beast2  *models.Beast `json:"beast2,omitempty"`
	Enemy   *models.Enemy `json:"enemy,omitempty"`
}

func (s *BattleService) loadBattleDetail(b models.Battle) battleDetail {
	detail := battleDetail{Battle: b}

	var p1 models.User
	if err := s.DB.First(&p1, "id = ?", b.Player1ID).Error; err == nil {
		detail.Player1 = &p1
	}
	var b1 models.Beast
	if err := s.DB.Preload("Moves.Move").First(&b1, "id = ?", b.Beast1ID).Error; err == nil {
		detail.Beast1 = &b1
	}
	if b.Player2ID != nil {
		var p2 models.User
		if err := s.DB.First(&p2, "id = ?", *b.Player2ID).Error; err == nil {
			detail.Player2 = &p2
		}
	}
	if b.Beast2ID != nil {
		var b2 models.Beast
		if err := s.DB.Preload("Moves.Move").First(&b2, "id = ?", *b.Beast2ID).Error; err == nil {
			detail.Beast2 = &b2
		}
	}
	if b.EnemyID != nil {
		detail.Enemy = models.ResolveEnemy(*b.EnemyID)
	}
	return detail
}

// CreatePVEBattle starts a match against a catalog enemy.
// Validation order matters: fields, enemy id, beast, player, ownership.
func (s *BattleService) CreatePVEBattle(c *fiber.Ctx) error {
	var req struct {
		PlayerID    string   `json:"player_id"`
		BeastID     string   `json:"beast_id"`
		EnemyID     *int     `json:"enemy_id"`
		StakeAmount *float64 `json:"stake_amount"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.PlayerID == "" || req.BeastID == "" || req.EnemyID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: player_id, beast_id, enemy_id"})
	}

	if models.ResolveEnemy(*req.EnemyID) == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enemy_id"})
	}

	var beast models.Beast
	if err := s.DB.First(&beast, "id = ?", req.BeastID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Beast not found"})
		}
		log.Printf("DB Error fetching beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var player models.User
	if err := s.DB.First(&player, "id = ?", req.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Player not found"})
		}
		log.Printf("DB Error fetching player: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if beast.OwnerAddress != player.WalletAddress {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Beast does not belong to this player"})
	}

	// Stake is recorded here but settled elsewhere; no balance check at this layer.
	stake := 0.0
	if req.StakeAmount != nil {
		stake = *req.StakeAmount
	}

	battle := models.Battle{
		ID:           uuid.NewString(),
		Player1ID:    req.PlayerID,
		Beast1ID:     req.BeastID,
		BattleType:   models.BattleTypePVE,
		EnemyID:      req.EnemyID,
		Status:       models.BattleStatusInProgress,
		CurrentTurn:  &req.PlayerID,
		RewardStatus: models.RewardStatusNone,
		StakeAmount:  stake,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.Create(&battle).Error; err != nil {
		log.Printf("DB Error creating PvE battle: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create battle"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"battle":  s.loadBattleDetail(battle),
	})
}

// CreatePVPBattle starts a match between two players. Beast ownership is not
// validated on this path.
func (s *BattleService) CreatePVPBattle(c *fiber.Ctx) error {
	var req struct {
		Player1ID string   `json:"player1_id"`
		Player2ID string   `json:"player2_id"`
		Beast1ID  string   `json:"beast1_id"`
		Beast2ID  string   `json:"beast2_id"`
		BetAmount *float64 `json:"bet_amount"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Player1ID == "" || req.Player2ID == "" || req.Beast1ID == "" || req.Beast2ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: player1_id, player2_id, beast1_id, beast2_id"})
	}

	bet := 0.0
	if req.BetAmount != nil {
		bet = *req.BetAmount
	}

	battle := models.Battle{
		ID:           uuid.NewString(),
		Player1ID:    req.Player1ID,
		Player2ID:    &req.Player2ID,
		Beast1ID:     req.Beast1ID,
		Beast2ID:     &req.Beast2ID,
		BattleType:   models.BattleTypePVP,
		Status:       models.BattleStatusInProgress,
		CurrentTurn:  &req.Player1ID,
		RewardStatus: models.RewardStatusNone,
		BetAmount:    bet,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.Create(&battle).Error; err != nil {
		log.Printf("DB Error creating PvP battle: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create battle"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"battle": battle})
}

// GetBattles serves GET /battles?battle_id= | ?user_id= — single detail view
// for polling, or a newest-first list of everything the user took part in.
func (s *BattleService) GetBattles(c *fiber.Ctx) error {
	if battleID := c.Query("battle_id"); battleID != "" {
		var battle models.Battle
		if err := s.DB.First(&battle, "id = ?", battleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Battle not found"})
			}
			log.Printf("DB Error fetching battle: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
		return c.JSON(fiber.Map{"battle": s.loadBattleDetail(battle)})
	}

	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "battle_id or user_id query parameter required"})
	}

	var battles []models.Battle
	if err := s.DB.
		Where("player1_id = ? OR player2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&battles).Error; err != nil {
		log.Printf("DB Error listing battles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"battles": battles})
}

// GetHistory returns the player's finished and running PvE matches, newest
// first, with the enemy name resolved for display.
func (s *BattleService) GetHistory(c *fiber.Ctx) error {
	playerID := c.Query("player_id")
	if playerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id query parameter required"})
	}

	var battles []models.Battle
	if err := s.DB.
		Where("player1_id = ? AND battle_type = ?", playerID, models.BattleTypePVE).
		Order("created_at DESC").
		Find(&battles).Error; err != nil {
		log.Printf("DB Error fetching history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	type historyEntry struct {
		ID        string    `json:"id"`
		EnemyName string    `json:"enemy_name"`
		Won       bool      `json:"won"`
		Reward    float64   `json:"reward"`
		CreatedAt time.Time `json:"created_at"`
	}

	entries := make([]historyEntry, len(battles))
	for i, b := range battles {
		enemyName := "Unknown"
		if b.EnemyID != nil {
			enemyName = models.ResolveEnemyName(*b.EnemyID)
		}
		won := b.WinnerID != nil && *b.WinnerID == b.Player1ID
		reward := 0.0
		if won {
			reward = b.RewardAmount
		}
		entries[i] = historyEntry{
			ID:        b.ID,
			EnemyName: enemyName,
			Won:       won,
			Reward:    reward,
			CreatedAt: b.CreatedAt,
		}
	}

	return c.JSON(fiber.Map{"battles": entries})
}
