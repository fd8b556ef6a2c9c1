package boss

// State is the behavior state of an encounter.
type State int

const (
	// StateIdle is the spawning state: positioned but not yet interactive.
	StateIdle State = iota
	StateChasing
	StateAttacking
	StateHurt
	StateDefeated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChasing:
		return "chasing"
	case StateAttacking:
		return "attacking"
	case StateHurt:
		return "hurt"
	case StateDefeated:
		return "defeated"
	}
	return "unknown"
}

// Timings, in seconds, and distances, in ground-plane units.
const (
	SpawnDuration  = 1.0
	AttackRange    = 1.5
	LungeDistance  = 0.5
	LungeOut       = 0.2
	LungeBack      = 0.2
	HurtRecovery   = 0.5
	DefeatDuration = 0.8
)
