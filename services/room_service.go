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

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// CreateRoom opens a PvP room: a battle in 'waiting' state with only the
// first participant filled in.
func (s *RoomService) CreateRoom(c *fiber.Ctx) error {
	var req struct {
		Player1ID string   `json:"player1_id"`
		Beast1ID  string   `json:"beast1_id"`
		BetAmount *float64 `json:"bet_amount"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Player1ID == "" || req.Beast1ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: player1_id, beast1_id"})
	}

	bet := 0.0
	if req.BetAmount != nil {
		bet = *req.BetAmount
	}

	room := models.Battle{
		ID:           uuid.NewString(),
		Player1ID:    req.Player1ID,
		Beast1ID:     req.Beast1ID,
		BattleType:   models.BattleTypePVP,
		Status:       models.BattleStatusWaiting,
		RewardStatus: models.RewardStatusNone,
		BetAmount:    bet,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.Create(&room).Error; err != nil {
		log.Printf("DB Error creating room: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create room"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"battle": room})
}

// ListOpenRooms returns joinable rooms, newest first.
func (s *RoomService) ListOpenRooms(c *fiber.Ctx) error {
	var rooms []models.Battle
	if err := s.DB.
		Where("status = ? AND battle_type = ?", models.BattleStatusWaiting, models.BattleTypePVP).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		log.Printf("DB Error listing rooms: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"battles": rooms})
}

// JoinRoom fills the second slot and starts the battle. The update is
// conditional on status still being 'waiting' so a join racing a cancel (or
// another join) loses cleanly with a 409 instead of corrupting the row.
func (s *RoomService) JoinRoom(c *fiber.Ctx) error {
	roomID := c.Params("id")
	if _, err := uuid.Parse(roomID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid battle ID"})
	}

	var req struct {
		Player2ID string `json:"player2_id"`
		Beast2ID  string `json:"beast2_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Player2ID == "" || req.Beast2ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: player2_id, beast2_id"})
	}

	var room models.Battle
	if err := s.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
		}
		log.Printf("DB Error fetching room: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if room.Status != models.BattleStatusWaiting {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Room is not open for joining"})
	}

	if room.Player1ID == req.Player2ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot join your own room"})
	}

	result := s.DB.Model(&models.Battle{}).
		Where("id = ? AND status = ?", roomID, models.BattleStatusWaiting).
		Updates(map[string]interface{}{
			"player2_id":   req.Player2ID,
			"beast2_id":    req.Beast2ID,
			"status":       models.BattleStatusInProgress,
			"current_turn": room.Player1ID,
		})
	if result.Error != nil {
		log.Printf("DB Error joining room %s: %v", roomID, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to join room"})
	}
	if result.RowsAffected == 0 {
		// Status changed between the read and the update
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Room was cancelled or already joined"})
	}

	if err := s.DB.First(&room, "id = ?", roomID).Error; err != nil {
		log.Printf("DB Error reloading room %s: %v", roomID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"battle": room})
}

// CancelRoom deletes a not-yet-started room. The delete is keyed on id AND
// status='waiting': if another player joined between the read and the delete,
// zero rows match and the caller gets a 409 instead of a silent success.
func (s *RoomService) CancelRoom(c *fiber.Ctx) error {
	roomID := c.Params("id")
	if _, err := uuid.Parse(roomID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid battle ID"})
	}

	var room models.Battle
	if err := s.DB.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Room not found"})
		}
		log.Printf("DB Error fetching room: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if room.Status != models.BattleStatusWaiting {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only waiting rooms can be cancelled"})
	}

	result := s.DB.
		Where("id = ? AND status = ?", roomID, models.BattleStatusWaiting).
		Delete(&models.Battle{})
	if result.Error != nil {
		log.Printf("DB Error cancelling room %s: %v", roomID, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel room"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Room was already joined"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Room cancelled"})
}
