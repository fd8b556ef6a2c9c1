package achievement

// SessionStats are the per-playthrough counters the rules read. They are
// never persisted.
type SessionStats struct {
	CollectCount int
	// CollectTimes are session-clock seconds, non-decreasing.
	CollectTimes        []float64
	MaxCombo            int
	BossesDefeated      int
	RoundsWithoutDamage int
	CurrentRound        int
	Score               int
}

func (s SessionStats) clone() SessionStats {
	s.CollectTimes = append([]float64(nil), s.CollectTimes...)
	return s
}

// value returns the counter a threshold of kind k compares against.
func (s SessionStats) value(k Kind) int {
	switch k {
	case KindCollect:
		return s.CollectCount
	case KindRound:
		return s.CurrentRound
	case KindCombo:
		return s.MaxCombo
	case KindBoss:
		return s.BossesDefeated
	case KindScore:
		return s.Score
	case KindNoDamage:
		return s.RoundsWithoutDamage
	}
	return 0
}
