package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/tick"
)

// Encounter is one live boss instance. Pending timers (spawn, lunge, hurt
// recovery, defeat) belong to the encounter, so detaching it cancels them.
type Encounter struct {
	id     uint64
	kind   Type
	cfg    Config
	bus    *event.Bus
	logger *zap.Logger

	health      int
	state       State
	attackTimer float64
	spawned     bool
	defeated    bool
	detached    bool
	lunging     bool

	position    cp.Vector
	lungeOrigin cp.Vector
	facing      float64

	timers       tick.Timers
	lungeTimer   tick.Handle
	recoverTimer tick.Handle
	onRemove     func(*Encounter)
}

func newEncounter(id uint64, kind Type, cfg Config, at cp.Vector, bus *event.Bus, logger *zap.Logger, onRemove func(*Encounter)) *Encounter {
	e := &Encounter{
		id:       id,
		kind:     kind,
		cfg:      cfg,
		bus:      bus,
		logger:   logger,
		health:   cfg.Health,
		state:    StateIdle,
		position: at,
		onRemove: onRemove,
	}
	e.timers.After(SpawnDuration, func() {
		if e.defeated {
			return
		}
		e.spawned = true
		// a boss hurt while spawning chases once it recovers
		if e.state == StateIdle {
			e.setState(StateChasing)
		}
		e.bus.Publish(Spawned{Boss: e.kind})
	})
	return e
}

func (e *Encounter) ID() uint64           { return e.id }
func (e *Encounter) Kind() Type           { return e.kind }
func (e *Encounter) Config() Config       { return e.cfg }
func (e *Encounter) Health() int          { return e.health }
func (e *Encounter) MaxHealth() int       { return e.cfg.Health }
func (e *Encounter) State() State         { return e.state }
func (e *Encounter) AttackTimer() float64 { return e.attackTimer }
func (e *Encounter) IsDefeated() bool     { return e.defeated }
func (e *Encounter) Position() cp.Vector  { return e.position }
func (e *Encounter) Scale() float64       { return e.cfg.Scale }

// Facing is the heading angle around the vertical axis, in radians.
func (e *Encounter) Facing() float64 { return e.facing }

func (e *Encounter) setState(next State) {
	if e.state == next {
		return
	}
	prev := e.state
	e.state = next
	e.logger.Debug("boss state changed",
		zap.Uint64("boss", e.id),
		zap.Stringer("from", prev),
		zap.Stringer("to", next))
	e.bus.Publish(StateChanged{From: prev, To: next})
}

func (e *Encounter) update(f tick.Frame) {
	if e.detached {
		return
	}
	// a state entered by a timer starts acting on the next frame
	entered := e.state
	e.timers.Advance(f.DT)
	if e.defeated || e.detached || e.state != entered {
		return
	}

	switch e.state {
	case StateChasing:
		e.chase(f)
	case StateAttacking:
		e.attack(f)
	}
}

func (e *Encounter) chase(f tick.Frame) {
	e.attackTimer += f.DT

	toPlayer := f.Player.Sub(e.position)
	dist := toPlayer.Length()
	if dist > 0 {
		dir := toPlayer.Mult(1 / dist)
		step := e.cfg.Speed * f.DT
		if step > dist {
			step = dist
		}
		e.position = e.position.Add(dir.Mult(step))
		e.facing = math.Atan2(dir.X, dir.Y)
	}

	if e.position.Distance(f.Player) < AttackRange {
		e.setState(StateAttacking)
	}
}

// attack waits out the cooldown, then lunges along the facing direction
// and returns to chasing once back at the origin.
func (e *Encounter) attack(f tick.Frame) {
	if e.lunging {
		return
	}
	e.attackTimer += f.DT
	if e.attackTimer < e.cfg.AttackCooldown {
		return
	}

	e.attackTimer = 0
	e.lunging = true
	e.bus.Publish(Attack{Damage: e.cfg.Damage})

	e.lungeOrigin = e.position
	target := e.lungeOrigin.Add(cp.Vector{X: math.Sin(e.facing), Y: math.Cos(e.facing)}.Mult(LungeDistance))
	e.lungeTimer = e.timers.After(LungeOut, func() {
		e.position = target
		e.lungeTimer = e.timers.After(LungeBack, func() {
			e.position = e.lungeOrigin
			e.lunging = false
			e.setState(StateChasing)
		})
	})
}

// TakeDamage applies amount to the boss. Damage to a defeated or detached
// boss, and non-positive amounts, are ignored. A boss that is still spawning
// takes damage but keeps its spawn animation.
func (e *Encounter) TakeDamage(amount int) {
	if e == nil || e.defeated || e.detached || amount <= 0 {
		return
	}

	e.health = max(e.health-amount, 0)
	e.interrupt()

	if e.health == 0 {
		e.defeat()
		return
	}

	e.setState(StateHurt)
	e.bus.Publish(Damaged{Health: e.health, MaxHealth: e.cfg.Health})
	e.recoverTimer = e.timers.After(HurtRecovery, func() {
		if e.defeated || e.state != StateHurt {
			return
		}
		if e.spawned {
			e.setState(StateChasing)
		} else {
			e.setState(StateIdle)
		}
	})
}

// interrupt drops a pending lunge or hurt recovery. A lunge in flight snaps
// back to where it started.
func (e *Encounter) interrupt() {
	e.timers.Cancel(e.lungeTimer)
	e.timers.Cancel(e.recoverTimer)
	e.lungeTimer, e.recoverTimer = tick.Handle{}, tick.Handle{}
	if e.lunging {
		e.position = e.lungeOrigin
		e.lunging = false
	}
}

// Hit applies one point of damage.
func (e *Encounter) Hit() { e.TakeDamage(1) }

func (e *Encounter) defeat() {
	e.defeated = true
	e.setState(StateDefeated)
	e.bus.Publish(Damaged{Health: e.health, MaxHealth: e.cfg.Health})
	e.logger.Info("boss defeated", zap.Uint64("boss", e.id), zap.String("type", string(e.kind)))

	e.timers.After(DefeatDuration, func() {
		if e.detached {
			return
		}
		e.detach()
		e.bus.Publish(Defeated{ScoreReward: e.cfg.ScoreReward})
	})
}

// detach removes the encounter from its controller and drops its timers.
func (e *Encounter) detach() {
	if e.detached {
		return
	}
	e.detached = true
	e.timers.CancelAll()
	if e.onRemove != nil {
		e.onRemove(e)
	}
}
