// Package session wires the progression engines into one play session
// driven by the host's frame loop.
package session

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/achievement"
	"github.com/milk9111/hauntedpumpkin/boss"
	"github.com/milk9111/hauntedpumpkin/combo"
	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/leaderboard"
	"github.com/milk9111/hauntedpumpkin/prefabs"
	"github.com/milk9111/hauntedpumpkin/store"
	"github.com/milk9111/hauntedpumpkin/tick"
)

// CollectPoints is the base score of one collect, before the combo
// multiplier.
const CollectPoints = 10

type Options struct {
	Store  store.Store
	Logger *zap.Logger
	// Roster overrides the boss roster read from the prefab specs.
	Roster *boss.Roster
	Rand   *rand.Rand
	// Boss replaces the roster's default type, surviving hot reloads.
	Boss boss.Type
	// HotReload watches the prefab directory and applies boss spec edits to
	// future spawns.
	HotReload bool
}

// Session is one playthrough. Run totals live here; lifetime state lives in
// the achievement engine and the leaderboard.
type Session struct {
	bus       *event.Bus
	logger    *zap.Logger
	scheduler *tick.Scheduler
	watcher   *prefabs.Watcher

	achievements *achievement.Engine
	combo        *combo.Meter
	bosses       *boss.Controller
	board        *leaderboard.Board

	bossType       boss.Type
	round          int
	score          int
	damagedInRound bool
	bossRound      int
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	roster := boss.DefaultRoster()
	if opts.Roster != nil {
		roster = *opts.Roster
	} else if loaded, err := boss.LoadRoster(); err != nil {
		logger.Warn("failed to load boss roster, using defaults", zap.Error(err))
	} else {
		roster = loaded
	}

	bus := event.NewBus()
	s := &Session{
		bus:          bus,
		logger:       logger,
		bossType:     opts.Boss,
		achievements: achievement.NewEngine(opts.Store, bus, logger.Named("achievement")),
		combo:        combo.NewMeter(bus),
		board:        leaderboard.NewBoard(opts.Store, logger.Named("leaderboard")),
		bossRound:    -1,
	}
	s.bosses = boss.NewController(s.withBossType(roster), bus, opts.Rand, logger.Named("boss"))
	s.scheduler = tick.NewScheduler(
		s.achievements,
		s.combo,
		s.bosses,
		tick.SystemFunc(s.spawnBosses),
	)

	event.Subscribe(bus, func(c combo.Changed) { s.achievements.OnCombo(c.Combo) })
	event.Subscribe(bus, func(d boss.Defeated) {
		s.achievements.OnBossDefeated()
		s.addScore(d.ScoreReward)
	})
	event.Subscribe(bus, func(boss.Attack) { s.TakeDamage() })

	if opts.HotReload {
		w, err := prefabs.NewWatcher(prefabs.DiskDir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.String("dir", prefabs.DiskDir), zap.Error(err))
		} else {
			s.watcher = w
			s.scheduler.Add(tick.SystemFunc(s.reloadPrefabs))
		}
	}
	return s
}

// Close stops the prefab watcher, if any.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *Session) Bus() *event.Bus                   { return s.bus }
func (s *Session) Achievements() *achievement.Engine { return s.achievements }
func (s *Session) Combo() *combo.Meter               { return s.combo }
func (s *Session) Bosses() *boss.Controller          { return s.bosses }
func (s *Session) Leaderboard() *leaderboard.Board   { return s.board }
func (s *Session) Score() int                        { return s.score }
func (s *Session) Round() int                        { return s.round }
func (s *Session) Elapsed() float64                  { return s.scheduler.Elapsed() }

// Update advances every engine by dt with the player at player.
func (s *Session) Update(dt float64, player cp.Vector) {
	s.scheduler.Update(tick.Frame{DT: dt, Round: s.round, Player: player})
}

// spawnBosses starts the default boss once per boss round.
func (s *Session) spawnBosses(f tick.Frame) {
	if s.bossRound == f.Round || !s.bosses.CheckBossRound(f.Round) {
		return
	}
	if _, ok := s.bosses.SpawnDefault(); ok {
		s.bossRound = f.Round
	}
}

func (s *Session) reloadPrefabs(tick.Frame) {
	if s.watcher == nil {
		return
	}
	changed := s.watcher.Changed()
	if len(changed) == 0 {
		return
	}
	roster, err := boss.LoadRoster()
	if err != nil {
		s.logger.Warn("boss roster reload failed", zap.Strings("files", changed), zap.Error(err))
		return
	}
	s.bosses.SetRoster(s.withBossType(roster))
	fields := []zap.Field{zap.Strings("files", changed)}
	if at, ok := prefabs.ModTime(prefabs.BossesFile); ok {
		fields = append(fields, zap.Time("modified", at))
	}
	s.logger.Info("boss roster reloaded", fields...)
}

func (s *Session) withBossType(roster boss.Roster) boss.Roster {
	if s.bossType == "" {
		return roster
	}
	if _, ok := roster.Configs[s.bossType]; !ok {
		s.logger.Warn("unknown boss type, keeping roster default",
			zap.String("type", string(s.bossType)),
			zap.String("default", string(roster.Default)))
		return roster
	}
	roster.Default = s.bossType
	return roster
}

// Collect reports a picked-up consumable.
func (s *Session) Collect() {
	s.combo.OnCollect()
	s.achievements.OnCollect()
	s.addScore(CollectPoints * s.combo.Multiplier())
}

// TakeDamage reports that the player was hit.
func (s *Session) TakeDamage() {
	s.damagedInRound = true
	s.achievements.OnDamageTaken()
}

// CompleteRound ends the current round. A round without player damage also
// counts toward the no-damage streak.
func (s *Session) CompleteRound() {
	s.round++
	s.achievements.OnRoundComplete(s.round)
	if !s.damagedInRound {
		s.achievements.OnRoundSurvivedNoDamage()
	}
	s.damagedInRound = false
}

// SetScore replaces the run score, for game fields that keep their own.
func (s *Session) SetScore(score int) {
	s.score = score
	s.achievements.OnScore(score)
}

func (s *Session) addScore(points int) {
	s.SetScore(s.score + points)
}

// HitBoss damages the current boss, if any.
func (s *Session) HitBoss(amount int) {
	s.bosses.CurrentBoss().TakeDamage(amount)
}

// Finish records the run on the leaderboard and starts a fresh run. Unlocked
// achievements and the leaderboard carry over.
func (s *Session) Finish() leaderboard.Result {
	res := s.board.AddScore(s.score, s.achievements.Stats().MaxCombo)
	s.logger.Info("run finished",
		zap.Int("score", s.score),
		zap.Int("round", s.round),
		zap.Int("rank", res.Rank))

	s.bosses.Reset()
	s.combo.Reset()
	s.achievements.ResetSession()
	s.scheduler.Reset()
	s.round = 0
	s.score = 0
	s.damagedInRound = false
	s.bossRound = -1
	return res
}

// OpenStore picks the store for a session: SQLite when path is set, the
// bounded in-memory store otherwise. The returned close func is never nil.
func OpenStore(path string, capacity int) (store.Store, func() error, error) {
	if path == "" {
		return store.NewMemory(capacity), func() error { return nil }, nil
	}
	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}
