package models

import "math"

// EnemyTemplate defines a scripted PvE opponent's base level and scaling multipliers.
// Stats are computed from these on every resolve, never stored.
type EnemyTemplate struct {
	Name       string
	Level      int
	HPMul      float64
	AttackMul  float64
	DefenseMul float64
	RewardMul  float64
}

// Enemy is the derived, display-ready form. Regenerated identically on every call.
type Enemy struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"maxHp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Reward  int    `json:"reward"`
}

// enemyCatalog is indexed by enemy_id - 1. Valid ids are 1..len(enemyCatalog).
var enemyCatalog = []EnemyTemplate{
	{Name: "Ember Whelp", Level: 1, HPMul: 20, AttackMul: 4, DefenseMul: 2, RewardMul: 10},
	{Name: "Mire Crawler", Level: 3, HPMul: 22, AttackMul: 4.5, DefenseMul: 2.5, RewardMul: 12},
	{Name: "Storm Harpy", Level: 5, HPMul: 24, AttackMul: 5, DefenseMul: 3, RewardMul: 14},
	{Name: "Obsidian Golem", Level: 8, HPMul: 28, AttackMul: 5.5, DefenseMul: 4, RewardMul: 16},
	{Name: "Frost Wyvern", Level: 12, HPMul: 30, AttackMul: 6, DefenseMul: 4.5, RewardMul: 18},
	{Name: "Void Tyrant", Level: 16, HPMul: 34, AttackMul: 7, DefenseMul: 5, RewardMul: 22},
}

// EnemyCount is the number of catalog entries; ids run 1..EnemyCount.
func EnemyCount() int {
	return len(enemyCatalog)
}

// ResolveEnemy derives the full stat block for a catalog id.
// Returns nil for ids outside 1..EnemyCount.
func ResolveEnemy(id int) *Enemy {
	if id < 1 || id > len(enemyCatalog) {
		return nil
	}
	t := enemyCatalog[id-1]
	hp := int(math.Floor(float64(t.Level) * t.HPMul))
	return &Enemy{
		ID:      id,
		Name:    t.Name,
		Level:   t.Level,
		HP:      hp,
		MaxHP:   hp,
		Attack:  int(math.Floor(float64(t.Level) * t.AttackMul)),
		Defense: int(math.Floor(float64(t.Level) * t.DefenseMul)),
		Reward:  int(math.Floor(float64(t.Level) * t.RewardMul)),
	}
}

// ResolveEnemyName is the lookup restricted to the display name. Out-of-range
// ids get the "Unknown" sentinel so listings never abort on a bad row.
func ResolveEnemyName(id int) string {
	if id < 1 || id > len(enemyCatalog) {
		return "Unknown"
	}
	return enemyCatalog[id-1].Name
}
