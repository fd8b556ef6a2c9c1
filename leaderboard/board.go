// Package leaderboard keeps the persisted top-ten of completed runs.
package leaderboard

import (
	"encoding/json"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/store"
)

// Capacity is the number of runs kept.
const Capacity = 10

// isoLayout is ISO-8601 in UTC with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Entry is one completed run.
type Entry struct {
	Score     int    `json:"score"`
	Combo     int    `json:"combo"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`

	// ordinal breaks exact score ties in arrival order. Kept entries are
	// numbered by position, so a newcomer always sorts after them.
	ordinal int
}

// RecordedAt parses Date, falling back to Timestamp.
func (e Entry) RecordedAt() time.Time {
	if at, err := time.Parse(time.RFC3339Nano, e.Date); err == nil {
		return at
	}
	return time.UnixMilli(e.Timestamp).UTC()
}

// Result describes where a newly added run landed.
type Result struct {
	Rank        int
	IsNewRecord bool
	IsTopTen    bool
}

// Board is the ranked list, read once from the store and written back in
// full after every change.
type Board struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time

	entries []Entry
}

func NewBoard(s store.Store, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Board{store: s, logger: logger, now: time.Now}
	b.entries = renumber(b.load())
	return b
}

func (b *Board) load() []Entry {
	if b.store == nil {
		return nil
	}
	raw, ok, err := b.store.Get(store.LeaderboardKey)
	if err != nil {
		b.logger.Warn("failed to load leaderboard", zap.String("key", store.LeaderboardKey), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		b.logger.Warn("failed to decode leaderboard", zap.String("key", store.LeaderboardKey), zap.Error(err))
		return nil
	}
	// hand-edited or foreign data may be out of order
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries
}

func (b *Board) save() {
	if b.store == nil {
		return
	}
	entries := b.entries
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err == nil {
		err = b.store.Set(store.LeaderboardKey, raw)
	}
	if err != nil {
		b.logger.Warn("failed to save leaderboard", zap.String("key", store.LeaderboardKey), zap.Error(err))
	}
}

// AddScore records a run. A run that does not make the top ten gets rank
// Capacity+1 and leaves the board unchanged.
func (b *Board) AddScore(score, combo int) Result {
	at := b.now().UTC()
	entry := Entry{
		Score:     score,
		Combo:     combo,
		Date:      at.Format(isoLayout),
		Timestamp: at.UnixMilli(),
		ordinal:   len(b.entries),
	}

	entries := append(slices.Clone(b.entries), entry)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ordinal < entries[j].ordinal
	})
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}

	rank := Capacity + 1
	if i := slices.IndexFunc(entries, func(e Entry) bool { return e.ordinal == entry.ordinal }); i >= 0 {
		rank = i + 1
	}
	if rank <= Capacity {
		b.entries = renumber(entries)
		b.save()
	}

	b.logger.Info("score recorded", zap.Int("score", score), zap.Int("combo", combo), zap.Int("rank", rank))
	return Result{Rank: rank, IsNewRecord: rank == 1, IsTopTen: rank <= Capacity}
}

func renumber(entries []Entry) []Entry {
	for i := range entries {
		entries[i].ordinal = i
	}
	return entries
}

// Leaderboard returns the ranked entries, best first. This is the
// in-process view: a run whose save failed stays listed here until the
// board is reloaded, even though the store never received it.
func (b *Board) Leaderboard() []Entry {
	return slices.Clone(b.entries)
}

func (b *Board) HighScore() int {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// Rank is the position score would take without inserting it.
func (b *Board) Rank(score int) int {
	return lo.CountBy(b.entries, func(e Entry) bool { return e.Score > score }) + 1
}

func (b *Board) IsHighScore(score int) bool {
	return score > b.HighScore()
}

// Clear removes the persisted board.
func (b *Board) Clear() {
	b.entries = nil
	if b.store == nil {
		return
	}
	if err := b.store.Delete(store.LeaderboardKey); err != nil {
		b.logger.Warn("failed to clear leaderboard", zap.String("key", store.LeaderboardKey), zap.Error(err))
	}
}
