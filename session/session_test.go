package session

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hauntedpumpkin/achievement"
	"github.com/milk9111/hauntedpumpkin/boss"
	"github.com/milk9111/hauntedpumpkin/prefabs"
	"github.com/milk9111/hauntedpumpkin/store"
)

var far = cp.Vector{X: 100, Y: 100}

func newTestSession(t *testing.T, s store.Store, roster *boss.Roster) *Session {
	t.Helper()
	if s == nil {
		s = store.NewMemory(store.DefaultCapacity)
	}
	if roster == nil {
		r := boss.DefaultRoster()
		roster = &r
	}
	sess := New(Options{Store: s, Roster: roster, Rand: rand.New(rand.NewPCG(7, 7))})
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestCollectScoresWithMultiplier(t *testing.T) {
	s := newTestSession(t, nil, nil)

	for range 10 {
		s.Collect()
	}
	assert.Equal(t, 250, s.Score())
	assert.Equal(t, 10, s.Combo().Combo())
	assert.Equal(t, 10, s.Achievements().Stats().MaxCombo)

	ach := s.Achievements()
	assert.True(t, ach.IsUnlocked(achievement.FirstBlood))
	assert.True(t, ach.IsUnlocked(achievement.ComboMaster))
	assert.True(t, ach.IsUnlocked(achievement.SpeedDemon))
	assert.False(t, ach.IsUnlocked(achievement.Collector))

	s.Update(2.5, far)
	assert.Equal(t, 0, s.Combo().Combo())
	assert.Equal(t, 10, ach.Stats().MaxCombo, "losing the combo keeps the session max")
}

func TestBossRoundSpawnsAndPaysOut(t *testing.T) {
	s := newTestSession(t, nil, nil)

	for range 4 {
		s.Update(0.1, far)
		assert.False(t, s.Bosses().HasActiveBoss())
		s.CompleteRound()
	}
	assert.Equal(t, 4, s.Round())
	assert.True(t, s.Achievements().IsUnlocked(achievement.Untouchable))

	s.Update(0.1, far)
	require.True(t, s.Bosses().HasActiveBoss())
	s.Update(boss.SpawnDuration, far)
	require.Equal(t, boss.StateChasing, s.Bosses().CurrentBoss().State())

	s.HitBoss(5)
	assert.False(t, s.Bosses().HasActiveBoss())
	assert.Equal(t, 0, s.Score(), "reward waits for the defeat animation")

	s.Update(boss.DefeatDuration, far)
	assert.Equal(t, 500, s.Score())
	assert.True(t, s.Achievements().IsUnlocked(achievement.BossSlayer))

	s.Update(1, far)
	assert.False(t, s.Bosses().HasActiveBoss(), "one boss per boss round")
	assert.Equal(t, 0, s.Bosses().ActiveCount())
}

func TestBossAttackDamagesPlayer(t *testing.T) {
	roster := boss.DefaultRoster()
	cfg := roster.Configs[boss.EvilPumpkin]
	cfg.AttackCooldown = 0.5
	cfg.SpawnRounds = []int{1}
	roster.Configs[boss.EvilPumpkin] = cfg
	s := newTestSession(t, nil, &roster)

	s.Update(0.1, far)
	e := s.Bosses().CurrentBoss()
	require.NotNil(t, e)
	s.Update(boss.SpawnDuration, e.Position())

	s.CompleteRound()
	require.Equal(t, 1, s.Achievements().Stats().RoundsWithoutDamage)

	s.Update(0.1, e.Position())
	require.Equal(t, boss.StateAttacking, e.State())
	s.Update(0.5, e.Position())

	assert.Equal(t, 0, s.Achievements().Stats().RoundsWithoutDamage)
	s.CompleteRound()
	assert.Equal(t, 0, s.Achievements().Stats().RoundsWithoutDamage, "damaged rounds do not extend the streak")
}

func TestFinishRecordsRunAndResets(t *testing.T) {
	mem := store.NewMemory(store.DefaultCapacity)
	s := newTestSession(t, mem, nil)

	for range 4 {
		s.Collect()
	}
	s.CompleteRound()
	s.Update(0.1, far)

	res := s.Finish()
	assert.Equal(t, 1, res.Rank)
	assert.True(t, res.IsNewRecord)

	board := s.Leaderboard().Leaderboard()
	require.Len(t, board, 1)
	assert.Equal(t, 60, board[0].Score)
	assert.Equal(t, 4, board[0].Combo)

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Round())
	assert.Equal(t, 0, s.Combo().Combo())
	assert.Equal(t, 0.0, s.Elapsed())
	assert.Equal(t, achievement.SessionStats{}, s.Achievements().Stats())
	assert.True(t, s.Achievements().IsUnlocked(achievement.FirstBlood))

	next := newTestSession(t, mem, nil)
	assert.True(t, next.Achievements().IsUnlocked(achievement.FirstBlood))
	assert.Equal(t, 60, next.Leaderboard().HighScore())
	assert.Equal(t, 2, next.Finish().Rank)
}

func TestFinishDuringBossFightDropsIt(t *testing.T) {
	roster := boss.DefaultRoster()
	cfg := roster.Configs[boss.EvilPumpkin]
	cfg.SpawnRounds = []int{1}
	roster.Configs[boss.EvilPumpkin] = cfg
	s := newTestSession(t, nil, &roster)

	s.Update(0.1, far)
	s.Update(boss.SpawnDuration, far)
	s.HitBoss(5)
	require.True(t, s.Bosses().CurrentBoss().IsDefeated())
	s.Finish()
	assert.Equal(t, 0, s.Bosses().ActiveCount())

	s.Update(boss.DefeatDuration, far)
	assert.Equal(t, 0, s.Score(), "a dropped boss pays nothing")
	assert.True(t, s.Bosses().HasActiveBoss(), "the new run spawns its own round-one boss")
}

func TestHotReloadAppliesRosterEdits(t *testing.T) {
	old := prefabs.DiskDir
	prefabs.DiskDir = t.TempDir()
	t.Cleanup(func() { prefabs.DiskDir = old })

	s := New(Options{Store: store.NewMemory(0), HotReload: true})
	t.Cleanup(func() { _ = s.Close() })
	require.Equal(t, 500, s.Bosses().Roster().Configs[boss.EvilPumpkin].ScoreReward)

	raw, err := prefabs.PrefabsFS.ReadFile(prefabs.BossesFile)
	require.NoError(t, err)
	edited := strings.Replace(string(raw), "score_reward: 500", "score_reward: 750", 1)
	require.NotEqual(t, string(raw), edited)
	// save the way editors do, so the watcher never sees a half-written file
	tmp := filepath.Join(t.TempDir(), prefabs.BossesFile)
	require.NoError(t, os.WriteFile(tmp, []byte(edited), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(prefabs.DiskDir, prefabs.BossesFile)))

	require.Eventually(t, func() bool {
		s.Update(0, far)
		return s.Bosses().Roster().Configs[boss.EvilPumpkin].ScoreReward == 750
	}, 3*time.Second, 20*time.Millisecond)
}

func TestOpenStore(t *testing.T) {
	mem, closeMem, err := OpenStore("", 1024)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, mem)
	assert.NoError(t, closeMem())

	db, closeDB, err := OpenStore(filepath.Join(t.TempDir(), "pumpkin.db"), 0)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLite{}, db)
	require.NoError(t, db.Set(store.LeaderboardKey, []byte("[]")))
	assert.NoError(t, closeDB())
}

func TestBossTypeOverride(t *testing.T) {
	roster := boss.DefaultRoster()
	king := roster.Configs[boss.EvilPumpkin]
	king.Name = "Pumpkin King"
	king.SpawnRounds = []int{1}
	roster.Configs["PUMPKIN_KING"] = king

	cases := []struct {
		name string
		boss boss.Type
		want boss.Type
	}{
		{"known", "PUMPKIN_KING", "PUMPKIN_KING"},
		{"unknown", "GHOST", boss.EvilPumpkin},
		{"unset", "", boss.EvilPumpkin},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(Options{Store: store.NewMemory(0), Roster: &roster, Boss: c.boss})
			assert.Equal(t, c.want, s.Bosses().Roster().Default)
		})
	}

	s := New(Options{Store: store.NewMemory(0), Roster: &roster, Boss: "PUMPKIN_KING"})
	s.Update(0.1, far)
	require.NotNil(t, s.Bosses().CurrentBoss())
	assert.Equal(t, boss.Type("PUMPKIN_KING"), s.Bosses().CurrentBoss().Kind())
}
