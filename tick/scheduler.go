package tick

type System interface {
	Update(f Frame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(f Frame)

func (fn SystemFunc) Update(f Frame) { fn(f) }

type Scheduler struct {
	systems []System
	elapsed float64
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update advances the session clock by f.DT and runs every system with the
// same frame. Negative deltas are treated as zero.
func (s *Scheduler) Update(f Frame) Frame {
	if f.DT < 0 {
		f.DT = 0
	}
	s.elapsed += f.DT
	f.Elapsed = s.elapsed
	for _, system := range s.systems {
		system.Update(f)
	}
	return f
}

// Elapsed returns the session time accumulated so far.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

// Reset rewinds the session clock.
func (s *Scheduler) Reset() {
	s.elapsed = 0
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
