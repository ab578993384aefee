package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

const statsCacheKey = "arenarise:stats"
const statsCacheTTL = 30 * time.Second

type StatsService struct {
	DB      *gorm.DB
	RDB     *redis.Client // nil when caching is disabled
	printer *message.Printer
}

func NewStatsService(db *gorm.DB, rdb *redis.Client) *StatsService {
	return &StatsService{
		DB:      db,
		RDB:     rdb,
		printer: message.NewPrinter(language.English),
	}
}

type statsPayload struct {
	TotalBeasts   int64  `json:"totalBeasts"`
	ActivePlayers int64  `json:"activePlayers"`
	BattlesFought int64  `json:"battlesFought"`
	TotalVolume   string `json:"totalVolume"`
}

// GetStats serves the landing-page aggregates. Counts come straight from the
// store; with redis configured they are cached for 30 seconds.
func (s *StatsService) GetStats(c *fiber.Ctx) error {
	ctx := context.Background()

	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, statsCacheKey).Result(); err == nil {
			var payload statsPayload
			if json.Unmarshal([]byte(cached), &payload) == nil {
				return c.JSON(payload)
			}
		}
	}

	var payload statsPayload

	if err := s.DB.Model(&models.Beast{}).Count(&payload.TotalBeasts).Error; err != nil {
		log.Printf("DB Error counting beasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Model(&models.User{}).Count(&payload.ActivePlayers).Error; err != nil {
		log.Printf("DB Error counting players: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Model(&models.Battle{}).
		Where("status = ?", models.BattleStatusCompleted).
		Count(&payload.BattlesFought).Error; err != nil {
		log.Printf("DB Error counting battles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var volume *float64
	if err := s.DB.Model(&models.Battle{}).
		Select("SUM(bet_amount + stake_amount)").
		Scan(&volume).Error; err != nil {
		log.Printf("DB Error summing volume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	total := 0.0
	if volume != nil {
		total = *volume
	}
	payload.TotalVolume = s.printer.Sprintf("%.2f", total)

	if s.RDB != nil {
		if data, err := json.Marshal(payload); err == nil {
			if err := s.RDB.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				log.Printf("⚠️ Failed to cache stats: %v", err)
			}
		}
	}

	return c.JSON(payload)
}
