// Package boss runs boss encounters: spawn gating by round, the per-boss
// chase/attack/hurt/defeat state machine, and the at-most-one-active rule.
package boss

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/tick"
)

// SpawnPoints are the four arena corners a boss may appear at.
var SpawnPoints = []cp.Vector{
	{X: -4, Y: -4},
	{X: 4, Y: -4},
	{X: -4, Y: 4},
	{X: 4, Y: 4},
}

// Controller owns every tracked encounter. At most one of them is not
// defeated at any time; a defeated one stays tracked until its defeat
// animation finishes.
type Controller struct {
	bus    *event.Bus
	logger *zap.Logger
	rng    *rand.Rand
	roster Roster

	active  []*Encounter
	current *Encounter
	nextID  uint64
}

// NewController builds a controller for roster. A nil rng is seeded from the
// wall clock.
func NewController(roster Roster, bus *event.Bus, rng *rand.Rand, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Controller{bus: bus, logger: logger, rng: rng, roster: roster}
}

// SetRoster replaces the configs used by future spawns. Live encounters keep
// the config they were spawned with.
func (c *Controller) SetRoster(roster Roster) {
	c.roster = roster
}

func (c *Controller) Roster() Roster {
	return c.roster
}

func (c *Controller) Update(f tick.Frame) {
	for _, e := range slices.Clone(c.active) {
		e.update(f)
	}
}

// CheckBossRound reports whether the default boss spawns on the 0-based
// round.
func (c *Controller) CheckBossRound(round int) bool {
	cfg, ok := c.roster.Configs[c.roster.Default]
	if !ok {
		return false
	}
	return cfg.IsSpawnRound(round + 1)
}

// SpawnBoss starts a new encounter of type t. It does nothing and returns
// false while a non-defeated boss exists or when t is unknown.
func (c *Controller) SpawnBoss(t Type) (*Encounter, bool) {
	if c.HasActiveBoss() {
		return nil, false
	}
	cfg, ok := c.roster.Configs[t]
	if !ok {
		c.logger.Warn("unknown boss type", zap.String("type", string(t)))
		return nil, false
	}

	c.nextID++
	at := SpawnPoints[c.rng.IntN(len(SpawnPoints))]
	e := newEncounter(c.nextID, t, cfg, at, c.bus, c.logger, c.remove)
	c.active = append(c.active, e)
	c.current = e

	c.logger.Info("boss spawning",
		zap.Uint64("boss", e.id),
		zap.String("type", string(t)),
		zap.Float64("x", at.X),
		zap.Float64("y", at.Y))
	return e, true
}

// SpawnDefault spawns the roster's default boss type.
func (c *Controller) SpawnDefault() (*Encounter, bool) {
	return c.SpawnBoss(c.roster.Default)
}

func (c *Controller) remove(e *Encounter) {
	c.active = slices.DeleteFunc(c.active, func(x *Encounter) bool { return x == e })
	if c.current == e {
		c.current = nil
	}
}

func (c *Controller) HasActiveBoss() bool {
	return c.current != nil && !c.current.IsDefeated()
}

// CurrentBoss returns the most recently spawned encounter until its defeat
// animation finishes, or nil.
func (c *Controller) CurrentBoss() *Encounter {
	return c.current
}

// ActiveCount is the number of tracked encounters, defeated ones included.
func (c *Controller) ActiveCount() int {
	return len(c.active)
}

// Reset drops every encounter without publishing defeat events. Pending
// timers of dropped encounters never fire.
func (c *Controller) Reset() {
	for _, e := range slices.Clone(c.active) {
		e.onRemove = nil
		e.detach()
	}
	c.active = nil
	c.current = nil
}
