// Package combo implements the decaying collect streak and its score
// multiplier.
package combo

import (
	"github.com/milk9111/hauntedpumpkin/event"
	"github.com/milk9111/hauntedpumpkin/tick"
)

const (
	// Window is how long a combo survives without another collect, in seconds.
	Window        = 2.0
	MaxMultiplier = 5
	// StepSize is the number of collects per multiplier step.
	StepSize = 3
)

var milestones = map[int]bool{3: true, 6: true, 9: true, 12: true, 15: true}

const (
	ChangedEvent   event.Type = "comboChanged"
	MilestoneEvent event.Type = "comboMilestone"
	LostEvent      event.Type = "comboLost"
)

type Changed struct {
	Combo      int
	Multiplier int
}

func (Changed) Type() event.Type { return ChangedEvent }

type Milestone struct {
	Multiplier int
}

func (Milestone) Type() event.Type { return MilestoneEvent }

// Lost carries the combo value that just expired.
type Lost struct {
	Combo int
}

func (Lost) Type() event.Type { return LostEvent }

// Multiplier returns the score multiplier for a combo value.
func Multiplier(combo int) int {
	if combo < 0 {
		combo = 0
	}
	return min(combo/StepSize+1, MaxMultiplier)
}

// Meter is the per-session combo state machine: active while collects keep
// arriving inside the window, inactive once the window runs out.
type Meter struct {
	bus *event.Bus

	combo         int
	timeRemaining float64
	multiplier    int
	active        bool
}

func NewMeter(bus *event.Bus) *Meter {
	return &Meter{bus: bus, multiplier: 1}
}

func (m *Meter) OnCollect() {
	m.combo++
	m.timeRemaining = Window
	m.active = true
	m.multiplier = Multiplier(m.combo)

	m.bus.Publish(Changed{Combo: m.combo, Multiplier: m.multiplier})
	if milestones[m.combo] {
		m.bus.Publish(Milestone{Multiplier: m.multiplier})
	}
}

// Update decays the window by f.DT and resets the combo when it runs out.
func (m *Meter) Update(f tick.Frame) {
	if !m.active {
		return
	}
	m.timeRemaining -= f.DT
	if m.timeRemaining <= 0 {
		m.reset()
	}
}

// Reset forces the combo back to zero through the normal expiry path.
func (m *Meter) Reset() {
	m.reset()
}

func (m *Meter) reset() {
	lost := m.combo

	m.combo = 0
	m.timeRemaining = 0
	m.multiplier = 1
	m.active = false

	if lost > 0 {
		m.bus.Publish(Lost{Combo: lost})
	}
	m.bus.Publish(Changed{Combo: 0, Multiplier: 1})
}

func (m *Meter) Combo() int { return m.combo }

func (m *Meter) Multiplier() int { return m.multiplier }

// TimeRemaining is the time left before the combo expires.
func (m *Meter) TimeRemaining() float64 { return m.timeRemaining }

func (m *Meter) Active() bool { return m.active }
