package workers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"arenarise-service/models"
	"arenarise-service/services"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Battle{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedPendingReward(t *testing.T, db *gorm.DB, wallet string) models.Battle {
	t.Helper()

	user := models.User{ID: uuid.NewString(), WalletAddress: wallet}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	battle := models.Battle{
		ID:           uuid.NewString(),
		Player1ID:    user.ID,
		Beast1ID:     uuid.NewString(),
		BattleType:   models.BattleTypePVE,
		Status:       models.BattleStatusCompleted,
		WinnerID:     &user.ID,
		RewardAmount: 200,
		RewardStatus: models.RewardStatusPending,
	}
	if err := db.Create(&battle).Error; err != nil {
		t.Fatalf("failed to seed battle: %v", err)
	}
	return battle
}

func rewardStatus(t *testing.T, db *gorm.DB, battleID string) models.RewardStatus {
	t.Helper()

	var battle models.Battle
	if err := db.First(&battle, "id = ?", battleID).Error; err != nil {
		t.Fatalf("failed to reload battle: %v", err)
	}
	return battle.RewardStatus
}

func newWorkerAgainst(db *gorm.DB, backendURL string) *PayoutWorker {
	client := services.NewPayoutClient(services.PayoutConfig{
		BaseURL:      backendURL,
		ServiceToken: "test-token",
	})
	return NewPayoutWorker(db, client)
}

func TestSettleBatchMarksCompleted(t *testing.T) {
	db := setupWorkerDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send/rise" {
			t.Errorf("path = %s, want /send/rise", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	battle := seedPendingReward(t, db, "EQPayee1")

	if err := newWorkerAgainst(db, srv.URL).settleBatch(context.Background()); err != nil {
		t.Fatalf("settleBatch: %v", err)
	}

	if got := rewardStatus(t, db, battle.ID); got != models.RewardStatusCompleted {
		t.Errorf("reward_status = %s, want completed", got)
	}
}

func TestSettleBatchMarksFailedOnRejection(t *testing.T) {
	db := setupWorkerDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	battle := seedPendingReward(t, db, "EQPayee2")

	if err := newWorkerAgainst(db, srv.URL).settleBatch(context.Background()); err != nil {
		t.Fatalf("settleBatch: %v", err)
	}

	if got := rewardStatus(t, db, battle.ID); got != models.RewardStatusFailed {
		t.Errorf("reward_status = %s, want failed on backend rejection", got)
	}
}

func TestSettleBatchLeavesPendingOnTransportError(t *testing.T) {
	db := setupWorkerDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	battle := seedPendingReward(t, db, "EQPayee3")

	if err := newWorkerAgainst(db, srv.URL).settleBatch(context.Background()); err != nil {
		t.Fatalf("settleBatch: %v", err)
	}

	if got := rewardStatus(t, db, battle.ID); got != models.RewardStatusPending {
		t.Errorf("reward_status = %s, want pending kept for retry", got)
	}
}

func TestSettleBatchFailsUnresolvableWinner(t *testing.T) {
	db := setupWorkerDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called when the winner is unresolvable")
	}))
	defer srv.Close()

	phantom := uuid.NewString()
	battle := models.Battle{
		ID:           uuid.NewString(),
		Player1ID:    phantom,
		Beast1ID:     uuid.NewString(),
		BattleType:   models.BattleTypePVE,
		Status:       models.BattleStatusCompleted,
		WinnerID:     &phantom,
		RewardAmount: 200,
		RewardStatus: models.RewardStatusPending,
	}
	if err := db.Create(&battle).Error; err != nil {
		t.Fatalf("failed to seed battle: %v", err)
	}

	if err := newWorkerAgainst(db, srv.URL).settleBatch(context.Background()); err != nil {
		t.Fatalf("settleBatch: %v", err)
	}

	if got := rewardStatus(t, db, battle.ID); got != models.RewardStatusFailed {
		t.Errorf("reward_status = %s, want failed", got)
	}
}
