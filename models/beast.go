package models

const (
	BeastStatusPending   = "pending"   // mint in flight
	BeastStatusCompleted = "completed" // on-chain, transferable
)

// Beast is an owned, NFT-backed combatant with stats and a fixed move set.
// Rows are created by the external minting flow calling back into this service.
type Beast struct {
	ID           string `json:"id" gorm:"primaryKey"`
	OwnerAddress string `json:"owner_address" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	ShareSlug    string `json:"share_slug" gorm:"index"`

	// Combat stats
	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
	Level   int `json:"level" gorm:"default:1"`

	// Trait metadata (element, rarity, ...) — full JSON archived to R2 at registration
	Element string `json:"element,omitempty"`
	Rarity  string `json:"rarity,omitempty"`

	Status string `json:"status" gorm:"type:varchar(16);default:'pending'"` // pending | completed

	Moves []BeastMove `json:"moves,omitempty" gorm:"foreignKey:BeastID"`

	Timestamps
}

// Move is a catalog entry beasts can be armed with.
type Move struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Power   int    `json:"power"`
	Element string `json:"element,omitempty"`
}

// BeastMove attaches one of the four catalog moves to a beast at creation.
type BeastMove struct {
	ID      string `json:"id" gorm:"primaryKey"`
	BeastID string `json:"beast_id" gorm:"index;not null"`
	MoveID  string `json:"move_id" gorm:"not null"`
	Slot    int    `json:"slot"` // 1..4
	Move    Move   `json:"move,omitempty" gorm:"foreignKey:MoveID"`
}
