// Package store provides the persisted key-value storage used for lifetime
// progression data (unlocked achievements, leaderboard).
package store

import "errors"

var (
	ErrQuotaExceeded = errors.New("store: quota exceeded")
	ErrClosed        = errors.New("store: closed")
)

// Well-known keys.
const (
	AchievementsKey = "haunted-pumpkin-achievements"
	LeaderboardKey  = "haunted-pumpkin-leaderboard"
)

// Store is a synchronous string-keyed byte store. Set replaces the whole
// value for a key in one step; a failed Set leaves the previous value intact.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
