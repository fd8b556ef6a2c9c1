package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BossesFile holds the boss roster.
const BossesFile = "bosses.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BossSpec struct {
	Name           string  `yaml:"name"`
	Health         int     `yaml:"health"`
	Speed          float64 `yaml:"speed"`
	Damage         int     `yaml:"damage"`
	Scale          float64 `yaml:"scale"`
	SpawnRounds    []int   `yaml:"spawn_rounds"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	ScoreReward    int     `yaml:"score_reward"`
}

type BossRosterSpec struct {
	Default string              `yaml:"default"`
	Bosses  map[string]BossSpec `yaml:"bosses"`
}

func LoadBossRosterSpec() (BossRosterSpec, error) {
	return LoadSpec[BossRosterSpec](BossesFile)
}
