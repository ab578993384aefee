package models

import "time"

// User is created lazily on first wallet connection.
// The wallet address is the natural key; identity is immutable after creation.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex;not null"`
	Username      string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
