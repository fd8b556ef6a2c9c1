// Package achievement evaluates the achievement catalog against live
// session counters and keeps the lifetime set of unlocked achievements.
package achievement

import (
	"encoding/json"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/store"
	"github.com/milk9111/hauntedpumpkin/tick"
)

// Trigger names an inbound gameplay notification for Notify.
type Trigger int

const (
	TriggerCollect Trigger = iota
	TriggerCombo
	TriggerRoundComplete
	TriggerBossDefeated
	TriggerDamageTaken
	TriggerRoundNoDamage
	TriggerScore
)

// Progress summarises how much of the catalog is unlocked.
type Progress struct {
	Unlocked   int
	Total      int
	Percentage int
}

// Engine is the achievement rule engine. It is not safe for concurrent use;
// the host drives it from the frame loop.
type Engine struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger

	unlocked []ID
	stats    SessionStats
	now      float64
}

// NewEngine loads the unlocked set from s. A missing, unreadable or corrupt
// value is treated as nothing unlocked yet.
func NewEngine(s store.Store, bus *event.Bus, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{store: s, bus: bus, logger: logger}
	e.unlocked = e.load()
	return e
}

func (e *Engine) load() []ID {
	if e.store == nil {
		return nil
	}
	data, ok, err := e.store.Get(store.AchievementsKey)
	if err != nil {
		e.logger.Warn("failed to load achievements", zap.String("key", store.AchievementsKey), zap.Error(err))
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}
	var raw []ID
	if err := json.Unmarshal(data, &raw); err != nil {
		e.logger.Warn("failed to decode achievements", zap.String("key", store.AchievementsKey), zap.Error(err))
		return nil
	}
	return lo.Uniq(lo.Compact(raw))
}

func (e *Engine) save() {
	if e.store == nil {
		return
	}
	data, err := json.Marshal(e.unlocked)
	if err == nil {
		err = e.store.Set(store.AchievementsKey, data)
	}
	if err != nil {
		e.logger.Warn("failed to save achievements", zap.String("key", store.AchievementsKey), zap.Error(err))
	}
}

// Update advances the session clock used to timestamp collects. The clock
// never moves backwards.
func (e *Engine) Update(f tick.Frame) {
	if f.Elapsed > e.now {
		e.now = f.Elapsed
	}
}

// Notify routes a generic notification to the typed notifiers. value is
// ignored by triggers that carry no payload.
func (e *Engine) Notify(trigger Trigger, value int) {
	switch trigger {
	case TriggerCollect:
		e.OnCollect()
	case TriggerCombo:
		e.OnCombo(value)
	case TriggerRoundComplete:
		e.OnRoundComplete(value)
	case TriggerBossDefeated:
		e.OnBossDefeated()
	case TriggerDamageTaken:
		e.OnDamageTaken()
	case TriggerRoundNoDamage:
		e.OnRoundSurvivedNoDamage()
	case TriggerScore:
		e.OnScore(value)
	}
}

func (e *Engine) OnCollect() {
	e.stats.CollectCount++
	e.stats.CollectTimes = append(e.stats.CollectTimes, e.now)
	e.evaluate(KindCollect)
	e.evaluate(KindSpeed)
}

// OnCombo records a combo value. Only a new session maximum is evaluated.
func (e *Engine) OnCombo(combo int) {
	if combo <= e.stats.MaxCombo {
		return
	}
	e.stats.MaxCombo = combo
	e.evaluate(KindCombo)
}

func (e *Engine) OnRoundComplete(round int) {
	e.stats.CurrentRound = round
	e.evaluate(KindRound)
}

func (e *Engine) OnBossDefeated() {
	e.stats.BossesDefeated++
	e.evaluate(KindBoss)
}

// OnDamageTaken breaks the no-damage streak.
func (e *Engine) OnDamageTaken() {
	e.stats.RoundsWithoutDamage = 0
}

func (e *Engine) OnRoundSurvivedNoDamage() {
	e.stats.RoundsWithoutDamage++
	e.evaluate(KindNoDamage)
}

func (e *Engine) OnScore(score int) {
	e.stats.Score = score
	e.evaluate(KindScore)
}

func (e *Engine) evaluate(kind Kind) {
	for _, def := range catalog {
		if def.Requirement.Kind() != kind || e.IsUnlocked(def.ID) {
			continue
		}
		if e.met(def.Requirement) {
			e.unlock(def)
		}
	}
}

func (e *Engine) met(req Requirement) bool {
	switch r := req.(type) {
	case Threshold:
		return e.stats.value(r.On) >= r.Count
	case Speed:
		return e.collectsWithin(r.Window) >= r.Count
	}
	return false
}

// collectsWithin counts collects strictly less than window seconds old.
func (e *Engine) collectsWithin(window float64) int {
	return lo.CountBy(e.stats.CollectTimes, func(at float64) bool {
		return e.now-at < window
	})
}

func (e *Engine) unlock(def Definition) {
	e.unlocked = append(e.unlocked, def.ID)
	e.save()
	e.logger.Info("achievement unlocked", zap.String("id", string(def.ID)), zap.String("name", def.Name))
	e.bus.Publish(Unlocked{Achievement: def})
}

// ResetSession clears the session counters and rewinds the session clock.
// The unlocked set is lifetime state and is left untouched.
func (e *Engine) ResetSession() {
	e.stats = SessionStats{}
	e.now = 0
}

// Stats returns a copy of the current session counters.
func (e *Engine) Stats() SessionStats {
	return e.stats.clone()
}

func (e *Engine) IsUnlocked(id ID) bool {
	return lo.Contains(e.unlocked, id)
}

// AllAchievements returns the whole catalog.
func (e *Engine) AllAchievements() []Definition {
	return Catalog()
}

// UnlockedAchievements returns the unlocked definitions in unlock order.
func (e *Engine) UnlockedAchievements() []Definition {
	return lo.FilterMap(e.unlocked, func(id ID, _ int) (Definition, bool) {
		return Lookup(id)
	})
}

// UnlockedIDs returns the persisted id set in unlock order.
func (e *Engine) UnlockedIDs() []ID {
	return append([]ID(nil), e.unlocked...)
}

func (e *Engine) Progress() Progress {
	total := len(catalog)
	unlocked := len(e.UnlockedAchievements())
	return Progress{
		Unlocked:   unlocked,
		Total:      total,
		Percentage: unlocked * 100 / total,
	}
}
