package services

import (
	"errors"
	"log"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// ConnectWallet lazily creates a user on first wallet connection. The wallet
// address is the natural key; calling again just returns the existing row.
func (s *UserService) ConnectWallet(c *fiber.Ctx) error {
	var req struct {
		WalletAddress string `json:"wallet_address"`
		Username      string `json:"username"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.WalletAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: wallet_address"})
	}

	var user models.User
	err := s.DB.First(&user, "wallet_address = ?", req.WalletAddress).Error
	if err == nil {
		return c.JSON(fiber.Map{"user": user})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("DB Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	user = models.User{
		ID:            uuid.NewString(),
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
	}

	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("DB Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// GetUser looks a user up by wallet address.
func (s *UserService) GetUser(c *fiber.Ctx) error {
	wallet := c.Params("wallet")

	var user models.User
	if err := s.DB.First(&user, "wallet_address = ?", wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("DB Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{"user": user})
}
