package models

import "time"

const (
	StakeStatusPending   = "pending"
	StakeStatusConfirmed = "confirmed"
	StakeStatusFailed    = "failed"
)

// StakeTransaction is an append-only record of an on-chain stake.
// Settlement happens in the external backend; this row just links the
// transaction hash back to the battle.
type StakeTransaction struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	BattleID        string    `json:"battle_id" gorm:"index;not null"`
	PlayerID        string    `json:"player_id" gorm:"index;not null"`
	Amount          float64   `json:"amount" gorm:"not null"`
	TransactionHash string    `json:"transaction_hash" gorm:"uniqueIndex;not null"`
	Status          string    `json:"status" gorm:"type:varchar(16);default:'pending'"`
	CreatedAt       time.Time `json:"created_at"`
}
