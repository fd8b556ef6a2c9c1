package boss

import (
	"fmt"
	"slices"

	"github.com/milk9111/hauntedpumpkin/prefabs"
)

// Type identifies a boss kind in the roster.
type Type string

const EvilPumpkin Type = "EVIL_PUMPKIN"

// Config is the static tuning for one boss type.
type Config struct {
	Name   string
	Health int
	Speed  float64
	Damage int
	Scale  float64
	// SpawnRounds are 1-based round numbers.
	SpawnRounds    []int
	AttackCooldown float64
	ScoreReward    int
}

// Roster is the set of known boss configs plus the type used for round
// checks.
type Roster struct {
	Default Type
	Configs map[Type]Config
}

// DefaultRoster is the compiled-in roster, used when the YAML spec cannot
// be read.
func DefaultRoster() Roster {
	return Roster{
		Default: EvilPumpkin,
		Configs: map[Type]Config{
			EvilPumpkin: {
				Name:           "Evil Pumpkin",
				Health:         5,
				Speed:          2,
				Damage:         1,
				Scale:          2.5,
				SpawnRounds:    []int{5, 10, 15, 20},
				AttackCooldown: 3,
				ScoreReward:    500,
			},
		},
	}
}

// LoadRoster reads the boss roster from the prefab specs.
func LoadRoster() (Roster, error) {
	spec, err := prefabs.LoadBossRosterSpec()
	if err != nil {
		return Roster{}, err
	}
	roster := Roster{Default: Type(spec.Default), Configs: make(map[Type]Config, len(spec.Bosses))}
	for name, b := range spec.Bosses {
		roster.Configs[Type(name)] = Config{
			Name:           b.Name,
			Health:         b.Health,
			Speed:          b.Speed,
			Damage:         b.Damage,
			Scale:          b.Scale,
			SpawnRounds:    slices.Clone(b.SpawnRounds),
			AttackCooldown: b.AttackCooldown,
			ScoreReward:    b.ScoreReward,
		}
	}
	if err := roster.Validate(); err != nil {
		return Roster{}, err
	}
	return roster, nil
}

func (r Roster) Validate() error {
	if len(r.Configs) == 0 {
		return fmt.Errorf("boss: empty roster")
	}
	if _, ok := r.Configs[r.Default]; !ok {
		return fmt.Errorf("boss: default type %q not in roster", r.Default)
	}
	for t, c := range r.Configs {
		if c.Health <= 0 {
			return fmt.Errorf("boss: %s: health must be positive, got %d", t, c.Health)
		}
		if c.Speed < 0 || c.AttackCooldown < 0 || c.ScoreReward < 0 {
			return fmt.Errorf("boss: %s: speed, attack cooldown and score reward must not be negative", t)
		}
	}
	return nil
}

// IsSpawnRound reports whether the 1-based round is a spawn round.
func (c Config) IsSpawnRound(round int) bool {
	return slices.Contains(c.SpawnRounds, round)
}
