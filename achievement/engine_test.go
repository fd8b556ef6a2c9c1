package achievement

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/store"
	"github.com/milk9111/hauntedpumpkin/tick"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(string) ([]byte, bool, error) { return nil, false, f.getErr }
func (f *failingStore) Set(string, []byte) error {
	f.sets++
	return f.setErr
}
func (f *failingStore) Delete(string) error { return nil }

func newTestEngine(t *testing.T, s store.Store) (*Engine, *[]ID) {
	t.Helper()
	bus := event.NewBus()
	var got []ID
	event.Subscribe(bus, func(u Unlocked) { got = append(got, u.Achievement.ID) })
	return NewEngine(s, bus, zap.NewNop()), &got
}

func collectAt(e *Engine, times ...float64) {
	for _, at := range times {
		e.Update(tick.Frame{Elapsed: at})
		e.OnCollect()
	}
}

func TestCatalogIsValid(t *testing.T) {
	defs := Catalog()
	require.Len(t, defs, 10)
	require.NoError(t, ValidateCatalog(defs))

	d, ok := Lookup(SpeedDemon)
	require.True(t, ok)
	assert.Equal(t, Speed{Count: 5, Window: 5}, d.Requirement)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
}

func TestValidateCatalogRejects(t *testing.T) {
	cases := []struct {
		name string
		defs []Definition
	}{
		{"duplicate_id", []Definition{
			{ID: "A", Requirement: Threshold{On: KindCollect, Count: 1}},
			{ID: "A", Requirement: Threshold{On: KindRound, Count: 1}},
		}},
		{"empty_id", []Definition{{Requirement: Threshold{On: KindCollect, Count: 1}}}},
		{"zero_threshold", []Definition{{ID: "A", Requirement: Threshold{On: KindCollect}}}},
		{"speed_without_window", []Definition{{ID: "A", Requirement: Speed{Count: 5}}}},
		{"threshold_on_speed", []Definition{{ID: "A", Requirement: Threshold{On: KindSpeed, Count: 5}}}},
		{"missing_requirement", []Definition{{ID: "A"}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Error(t, ValidateCatalog(c.defs))
		})
	}
}

func TestThresholdUnlocks(t *testing.T) {
	cases := []struct {
		name   string
		drive  func(e *Engine)
		expect []ID
	}{
		{"first_collect", func(e *Engine) { e.OnCollect() }, []ID{FirstBlood}},
		{"round_ten", func(e *Engine) { e.OnRoundComplete(10) }, []ID{Survivor}},
		{"round_twenty_unlocks_both", func(e *Engine) { e.OnRoundComplete(20) }, []ID{Survivor, Immortal}},
		{"combo_ten", func(e *Engine) { e.OnCombo(10) }, []ID{ComboMaster}},
		{"combo_twenty", func(e *Engine) { e.OnCombo(20) }, []ID{ComboMaster, ComboGod}},
		{"boss", func(e *Engine) { e.OnBossDefeated() }, []ID{BossSlayer}},
		{"score_below", func(e *Engine) { e.OnScore(999) }, nil},
		{"score", func(e *Engine) { e.OnScore(1000) }, []ID{PumpkinMaster}},
		{"no_damage_streak", func(e *Engine) {
			for i := 0; i < 3; i++ {
				e.OnRoundSurvivedNoDamage()
			}
		}, []ID{Untouchable}},
		{"no_damage_streak_broken", func(e *Engine) {
			e.OnRoundSurvivedNoDamage()
			e.OnRoundSurvivedNoDamage()
			e.OnDamageTaken()
			e.OnRoundSurvivedNoDamage()
		}, nil},
		{"notify_routes", func(e *Engine) {
			e.Notify(TriggerScore, 1500)
			e.Notify(TriggerBossDefeated, 0)
			e.Notify(TriggerDamageTaken, 0)
		}, []ID{PumpkinMaster, BossSlayer}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, got := newTestEngine(t, store.NewMemory(0))
			c.drive(e)
			assert.Equal(t, c.expect, *got)
			for _, id := range c.expect {
				assert.True(t, e.IsUnlocked(id))
			}
		})
	}
}

func TestCollectorNeedsFiftyCollects(t *testing.T) {
	e, got := newTestEngine(t, store.NewMemory(0))
	for i := 0; i < 49; i++ {
		e.Update(tick.Frame{Elapsed: float64(i) * 10})
		e.OnCollect()
	}
	assert.False(t, e.IsUnlocked(Collector))

	e.OnCollect()
	assert.True(t, e.IsUnlocked(Collector))
	assert.Equal(t, []ID{FirstBlood, Collector}, *got)
}

func TestSpeedWindow(t *testing.T) {
	cases := []struct {
		name     string
		times    []float64
		unlocked bool
	}{
		{"five_in_window", []float64{0, 1, 2, 3, 4}, true},
		{"last_outside", []float64{0, 1, 2, 3, 10}, false},
		{"exactly_window_apart", []float64{0, 1, 2, 3, 5}, false},
		{"burst_after_gap", []float64{0, 20, 20.5, 21, 21.5, 22}, true},
		{"four_only", []float64{0, 0.1, 0.2, 0.3}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, _ := newTestEngine(t, store.NewMemory(0))
			collectAt(e, c.times...)
			assert.Equal(t, c.unlocked, e.IsUnlocked(SpeedDemon))
		})
	}
}

func TestSessionClockIsMonotonic(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory(0))
	e.Update(tick.Frame{Elapsed: 10})
	e.Update(tick.Frame{Elapsed: 3})
	e.OnCollect()

	assert.Equal(t, []float64{10}, e.Stats().CollectTimes)
}

func TestUnlockIsIdempotentAcrossSessions(t *testing.T) {
	e, got := newTestEngine(t, store.NewMemory(0))

	e.OnCollect()
	e.OnCombo(12)
	e.ResetSession()
	assert.Equal(t, SessionStats{}, e.Stats())

	e.OnCollect()
	e.OnCombo(12)
	e.OnCombo(5)

	assert.Equal(t, []ID{FirstBlood, ComboMaster}, *got)
	assert.True(t, e.IsUnlocked(FirstBlood))
	assert.True(t, e.IsUnlocked(ComboMaster))
	assert.Equal(t, 12, e.Stats().MaxCombo)
}

func TestComboOnlyRaisesMax(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory(0))
	e.OnCombo(8)
	e.OnCombo(3)
	assert.Equal(t, 8, e.Stats().MaxCombo)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s := store.NewMemory(0)
	e, _ := newTestEngine(t, s)
	e.OnCollect()
	e.OnBossDefeated()

	raw, ok, err := s.Get(store.AchievementsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["FIRST_BLOOD","BOSS_SLAYER"]`, string(raw))

	reloaded, got := newTestEngine(t, s)
	assert.Equal(t, e.UnlockedIDs(), reloaded.UnlockedIDs())

	reloaded.OnCollect()
	assert.Empty(t, *got, "already unlocked achievements are not re-emitted")

	again, err := json.Marshal(reloaded.UnlockedIDs())
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestLoadDeduplicatesAndKeepsUnknownIDs(t *testing.T) {
	s := store.NewMemory(0)
	require.NoError(t, s.Set(store.AchievementsKey, []byte(`["FIRST_BLOOD","FIRST_BLOOD","","LEGACY"]`)))

	e, _ := newTestEngine(t, s)
	assert.Equal(t, []ID{FirstBlood, "LEGACY"}, e.UnlockedIDs())
	assert.Equal(t, Progress{Unlocked: 1, Total: 10, Percentage: 10}, e.Progress())
}

func TestCorruptOrFailingStoreDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	corrupt := store.NewMemory(0)
	require.NoError(t, corrupt.Set(store.AchievementsKey, []byte(`{not json`)))

	e := NewEngine(corrupt, event.NewBus(), logger)
	assert.Empty(t, e.UnlockedIDs())
	assert.Equal(t, 1, logs.FilterMessage("failed to decode achievements").Len())

	broken := &failingStore{getErr: errors.New("disk gone"), setErr: store.ErrQuotaExceeded}
	e = NewEngine(broken, event.NewBus(), logger)
	assert.Empty(t, e.UnlockedIDs())

	assert.NotPanics(t, func() { e.OnCollect() })
	assert.True(t, e.IsUnlocked(FirstBlood), "write failures do not undo the unlock")
	assert.Equal(t, 1, broken.sets)
	assert.Equal(t, 1, logs.FilterMessage("failed to save achievements").Len())
}

func TestProgress(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	assert.Equal(t, Progress{Unlocked: 0, Total: 10, Percentage: 0}, e.Progress())

	e.OnCollect()
	e.OnRoundComplete(20)
	assert.Equal(t, Progress{Unlocked: 3, Total: 10, Percentage: 30}, e.Progress())

	defs := e.UnlockedAchievements()
	require.Len(t, defs, 3)
	assert.Equal(t, "First Blood", defs[0].Name)
	assert.Len(t, e.AllAchievements(), 10)
}

func TestResetSessionRewindsClock(t *testing.T) {
	e, _ := newTestEngine(t, store.NewMemory(0))
	e.Update(tick.Frame{Elapsed: 40})
	e.ResetSession()

	e.Update(tick.Frame{Elapsed: 2})
	e.OnCollect()
	assert.Equal(t, []float64{2}, e.Stats().CollectTimes)
}
