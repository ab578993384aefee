package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"arenarise-service/models"
	"arenarise-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type BeastService struct {
	DB *gorm.DB
}

func NewBeastService(db *gorm.DB) *BeastService {
	return &BeastService{DB: db}
}

// RegisterBeast is the mint-flow callback: it records a freshly minted beast
// in 'pending' state and archives its trait metadata to R2 (best-effort).
func (s *BeastService) RegisterBeast(c *fiber.Ctx) error {
	var req struct {
		OwnerAddress string `json:"owner_address"`
		Name         string `json:"name"`
		MaxHP        int    `json:"max_hp"`
		Attack       int    `json:"attack"`
		Defense      int    `json:"defense"`
		Speed        int    `json:"speed"`
		Level        int    `json:"level"`
		Element      string `json:"element"`
		Rarity       string `json:"rarity"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.OwnerAddress == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: owner_address, name"})
	}

	beast := models.Beast{
		ID:           uuid.NewString(),
		OwnerAddress: req.OwnerAddress,
		Name:         req.Name,
		HP:           req.MaxHP,
		MaxHP:        req.MaxHP,
		Attack:       req.Attack,
		Defense:      req.Defense,
		Speed:        req.Speed,
		Level:        req.Level,
		Element:      req.Element,
		Rarity:       req.Rarity,
		Status:       models.BeastStatusPending,
	}
	if beast.Level < 1 {
		beast.Level = 1
	}
	// Share links use the slug; suffix with the id prefix so names can repeat
	beast.ShareSlug = fmt.Sprintf("%s-%s", slug.Make(req.Name), beast.ID[:8])

	if err := s.DB.Create(&beast).Error; err != nil {
		log.Printf("DB Error registering beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register beast"})
	}

	if utils.R2Enabled() {
		key := fmt.Sprintf("beasts/%s/traits.json", beast.ID)
		if url, err := utils.UploadJSONToR2(key, beast); err != nil {
			log.Printf("⚠️ Failed to archive traits for beast %s: %v", beast.ID, err)
		} else {
			log.Printf("📦 Archived traits for beast %s at %s", beast.ID, url)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"beast": beast})
}

// ActivateBeast flips a pending beast to completed once the mint is on-chain.
func (s *BeastService) ActivateBeast(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid beast ID"})
	}

	var beast models.Beast
	if err := s.DB.First(&beast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Beast not found"})
		}
		log.Printf("DB Error fetching beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if beast.Status != models.BeastStatusCompleted {
		beast.Status = models.BeastStatusCompleted
		if err := s.DB.Save(&beast).Error; err != nil {
			log.Printf("DB Error activating beast %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to activate beast"})
		}
	}

	return c.JSON(fiber.Map{"beast": beast})
}

// GetBeast returns one beast with its move set.
func (s *BeastService) GetBeast(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid beast ID"})
	}

	var beast models.Beast
	if err := s.DB.Preload("Moves.Move").First(&beast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Beast not found"})
		}
		log.Printf("DB Error fetching beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"beast": beast})
}

// ListBeasts returns beasts, optionally filtered by owner wallet.
func (s *BeastService) ListBeasts(c *fiber.Ctx) error {
	query := s.DB.Preload("Moves.Move").Order("created_at DESC")
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner_address = ?", owner)
	}

	var beasts []models.Beast
	if err := query.Find(&beasts).Error; err != nil {
		log.Printf("DB Error listing beasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"beasts": beasts})
}

// AssignMoves arms a beast with four random distinct moves from the catalog.
// Re-running replaces the previous assignment.
func (s *BeastService) AssignMoves(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid beast ID"})
	}

	var beast models.Beast
	if err := s.DB.First(&beast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Beast not found"})
		}
		log.Printf("DB Error fetching beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var catalog []models.Move
	if err := s.DB.Find(&catalog).Error; err != nil {
		log.Printf("DB Error loading move catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if len(catalog) < 4 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Move catalog has fewer than 4 moves"})
	}

	rand.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})

	if err := s.DB.Where("beast_id = ?", beast.ID).Delete(&models.BeastMove{}).Error; err != nil {
		log.Printf("DB Error clearing beast moves: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign moves"})
	}

	assigned := make([]models.BeastMove, 4)
	for i := 0; i < 4; i++ {
		assigned[i] = models.BeastMove{
			ID:      uuid.NewString(),
			BeastID: beast.ID,
			MoveID:  catalog[i].ID,
			Slot:    i + 1,
			Move:    catalog[i],
		}
	}

	if err := s.DB.Create(&assigned).Error; err != nil {
		log.Printf("DB Error assigning beast moves: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign moves"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"moves": assigned})
}

// TransferBeast moves ownership to the buyer's wallet after a purchase.
func (s *BeastService) TransferBeast(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid beast ID"})
	}

	var req struct {
		BuyerWallet string `json:"buyer_wallet"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.BuyerWallet == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: buyer_wallet"})
	}

	var beast models.Beast
	if err := s.DB.First(&beast, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Beast not found"})
		}
		log.Printf("DB Error fetching beast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if beast.Status != models.BeastStatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Beast is not transferable while minting"})
	}

	if beast.OwnerAddress == req.BuyerWallet {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Buyer already owns this beast"})
	}

	beast.OwnerAddress = req.BuyerWallet
	if err := s.DB.Save(&beast).Error; err != nil {
		log.Printf("DB Error transferring beast %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to transfer beast"})
	}

	return c.JSON(fiber.Map{"beast": beast})
}

// ListMoveCatalog returns every move beasts can be armed with.
func (s *BeastService) ListMoveCatalog(c *fiber.Ctx) error {
	var moves []models.Move
	if err := s.DB.Order("name ASC").Find(&moves).Error; err != nil {
		log.Printf("DB Error listing move catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"moves": moves})
}
