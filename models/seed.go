package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var defaultMoves = []Move{
	{Name: "Quick Slash", Power: 10, Element: "neutral"},
	{Name: "Flame Burst", Power: 14, Element: "fire"},
	{Name: "Tidal Crush", Power: 14, Element: "water"},
	{Name: "Stone Wall", Power: 8, Element: "earth"},
	{Name: "Gale Strike", Power: 12, Element: "air"},
	{Name: "Venom Fang", Power: 11, Element: "poison"},
	{Name: "Static Jolt", Power: 13, Element: "electric"},
	{Name: "Umbral Bite", Power: 15, Element: "shadow"},
}

// SeedMoveCatalog inserts the default move set, keyed by name so restarts
// don't duplicate rows. Move assignment needs at least four entries.
func SeedMoveCatalog(db *gorm.DB) error {
	for _, m := range defaultMoves {
		var existing Move
		err := db.First(&existing, "name = ?", m.Name).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m.ID = uuid.NewString()
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}
