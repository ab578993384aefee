package models

import "time"

const (
	BattleTypePVE = "pve"
	BattleTypePVP = "pvp"
)

const (
	BattleStatusWaiting    = "waiting"
	BattleStatusInProgress = "in_progress"
	BattleStatusCompleted  = "completed"
)

// RewardStatus tracks payout progress against the external transfer service
type RewardStatus string

const (
	RewardStatusNone      RewardStatus = "none"
	RewardStatusPending   RewardStatus = "pending"
	RewardStatusCompleted RewardStatus = "completed"
	RewardStatusFailed    RewardStatus = "failed"
)

// Battle is one match record, PvE (vs catalog enemy) or PvP (vs another player).
// A PvP battle in 'waiting' state is an open room pending a second participant.
type Battle struct {
	ID string `json:"id" gorm:"primaryKey"`

	// Participants — player2/beast2 stay null for PvE and for open rooms
	Player1ID string  `json:"player1_id" gorm:"index;not null"`
	Player2ID *string `json:"player2_id,omitempty" gorm:"index"`
	Beast1ID  string  `json:"beast1_id"`
	Beast2ID  *string `json:"beast2_id,omitempty"`

	BattleType string `json:"battle_type" gorm:"type:varchar(8);not null"` // pve | pvp
	EnemyID    *int   `json:"enemy_id,omitempty"`                          // PvE only, catalog index

	// Progress: waiting → in_progress → completed, never backwards
	Status      string  `json:"status" gorm:"type:varchar(16);not null;index"`
	CurrentTurn *string `json:"current_turn,omitempty"` // participant whose move is awaited

	// Outcome — winner set iff status = completed
	WinnerID     *string      `json:"winner_id,omitempty"`
	RewardAmount float64      `json:"reward_amount" gorm:"default:0"`
	RewardStatus RewardStatus `json:"reward_status" gorm:"type:varchar(16);default:'none'"`

	// Economic
	BetAmount      float64 `json:"bet_amount" gorm:"default:0"`
	StakeAmount    float64 `json:"stake_amount" gorm:"default:0"`
	Player1StakeTx *string `json:"player1_stake_tx,omitempty"`
	Player2StakeTx *string `json:"player2_stake_tx,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index"` // drives stale-room expiry
	UpdatedAt time.Time `json:"updated_at"`
}

// BattleMove is an append-only log entry; never updated or deleted.
// Combat math is client-reported — the server records what it is told.
type BattleMove struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	BattleID          string    `json:"battle_id" gorm:"index;not null"`
	PlayerID          string    `json:"player_id" gorm:"not null"`
	MoveID            string    `json:"move_id" gorm:"not null"`
	TurnNumber        int       `json:"turn_number" gorm:"not null"` // ordering key
	DamageDealt       int       `json:"damage_dealt"`
	TargetHPRemaining int       `json:"target_hp_remaining"`
	CreatedAt         time.Time `json:"created_at"`
}
