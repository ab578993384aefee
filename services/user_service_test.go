package services

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newUserTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	svc := NewUserService(db)
	app.Post("/users/connect", svc.ConnectWallet)
	app.Get("/users/:wallet", svc.GetUser)
	return app
}

func TestConnectWallet(t *testing.T) {
	db := setupTestDB(t)
	app := newUserTestApp(db)

	t.Run("missing_wallet", func(t *testing.T) {
		resp := performJSON(t, app, "POST", "/users/connect", map[string]interface{}{})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("lazy_create_then_idempotent", func(t *testing.T) {
		resp := performJSON(t, app, "POST", "/users/connect", map[string]interface{}{
			"wallet_address": "EQFirstTimer",
			"username":       "gleam",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("first connect status = %d, want 201", resp.StatusCode)
		}
		created := decodeBody(t, resp)["user"].(map[string]interface{})

		resp = performJSON(t, app, "POST", "/users/connect", map[string]interface{}{
			"wallet_address": "EQFirstTimer",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("second connect status = %d, want 200", resp.StatusCode)
		}
		existing := decodeBody(t, resp)["user"].(map[string]interface{})

		if created["id"] != existing["id"] {
			t.Errorf("connect not idempotent: %v vs %v", created["id"], existing["id"])
		}
	})
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)
	app := newUserTestApp(db)

	user := seedUser(t, db, "EQKnown")

	t.Run("found", func(t *testing.T) {
		resp := performJSON(t, app, "GET", "/users/EQKnown", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		got := decodeBody(t, resp)["user"].(map[string]interface{})
		if got["id"] != user.ID {
			t.Errorf("id = %v, want %s", got["id"], user.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		resp := performJSON(t, app, "GET", "/users/EQStranger", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}
