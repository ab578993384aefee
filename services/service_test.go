package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"arenarise-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache DSN per test so parallel tests don't share state
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Beast{},
		&models.Move{},
		&models.BeastMove{},
		&models.Battle{},
		&models.BattleMove{},
		&models.StakeTransaction{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func performJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func seedUser(t *testing.T, db *gorm.DB, wallet string) models.User {
	t.Helper()

	user := models.User{
		ID:            uuid.NewString(),
		WalletAddress: wallet,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedBeast(t *testing.T, db *gorm.DB, owner string) models.Beast {
	t.Helper()

	beast := models.Beast{
		ID:           uuid.NewString(),
		OwnerAddress: owner,
		Name:         "Cinder Drake",
		HP:           100,
		MaxHP:        100,
		Attack:       20,
		Defense:      10,
		Speed:        12,
		Level:        1,
		Status:       models.BeastStatusCompleted,
	}
	if err := db.Create(&beast).Error; err != nil {
		t.Fatalf("failed to seed beast: %v", err)
	}
	return beast
}
