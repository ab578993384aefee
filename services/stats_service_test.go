package services

import (
	"net/http"
	"testing"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New()
	app.Get("/stats", NewStatsService(db, nil).GetStats)

	seedUser(t, db, "EQStatsA")
	seedUser(t, db, "EQStatsB")
	seedBeast(t, db, "EQStatsA")
	seedBeast(t, db, "EQStatsA")
	seedBeast(t, db, "EQStatsB")

	battles := []models.Battle{
		{
			ID:         uuid.NewString(),
			Player1ID:  uuid.NewString(),
			Beast1ID:   uuid.NewString(),
			BattleType: models.BattleTypePVE,
			Status:     models.BattleStatusCompleted,
			StakeAmount: 100.5,
		},
		{
			ID:         uuid.NewString(),
			Player1ID:  uuid.NewString(),
			Beast1ID:   uuid.NewString(),
			BattleType: models.BattleTypePVP,
			Status:     models.BattleStatusCompleted,
			BetAmount:  49.5,
		},
		{
			ID:         uuid.NewString(),
			Player1ID:  uuid.NewString(),
			Beast1ID:   uuid.NewString(),
			BattleType: models.BattleTypePVP,
			Status:     models.BattleStatusInProgress,
			BetAmount:  25,
		},
	}
	for _, b := range battles {
		if err := db.Create(&b).Error; err != nil {
			t.Fatalf("failed to seed battle: %v", err)
		}
	}

	resp := performJSON(t, app, "GET", "/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)

	if body["totalBeasts"].(float64) != 3 {
		t.Errorf("totalBeasts = %v, want 3", body["totalBeasts"])
	}
	if body["activePlayers"].(float64) != 2 {
		t.Errorf("activePlayers = %v, want 2", body["activePlayers"])
	}
	if body["battlesFought"].(float64) != 2 {
		t.Errorf("battlesFought = %v, want 2 (completed only)", body["battlesFought"])
	}
	// 100.5 + 49.5 + 25 across all battles, formatted to 2 decimals
	if body["totalVolume"] != "175.00" {
		t.Errorf("totalVolume = %v, want 175.00", body["totalVolume"])
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	app := fiber.New()
	app.Get("/stats", NewStatsService(db, nil).GetStats)

	resp := performJSON(t, app, "GET", "/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["totalVolume"] != "0.00" {
		t.Errorf("totalVolume = %v, want 0.00 on empty store", body["totalVolume"])
	}
}
