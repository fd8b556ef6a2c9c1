package boss

import "github.com/milk9111/hauntedpumpkin/event"

const (
	SpawnedEvent      event.Type = "bossSpawned"
	DamagedEvent      event.Type = "bossDamaged"
	AttackEvent       event.Type = "bossAttack"
	DefeatedEvent     event.Type = "bossDefeated"
	StateChangedEvent event.Type = "bossStateChanged"
)

type Spawned struct {
	Boss Type
}

func (Spawned) Type() event.Type { return SpawnedEvent }

type Damaged struct {
	Health    int
	MaxHealth int
}

func (Damaged) Type() event.Type { return DamagedEvent }

type Attack struct {
	Damage int
}

func (Attack) Type() event.Type { return AttackEvent }

type Defeated struct {
	ScoreReward int
}

func (Defeated) Type() event.Type { return DefeatedEvent }

type StateChanged struct {
	From State
	To   State
}

func (StateChanged) Type() event.Type { return StateChangedEvent }
