package tick

// dueEpsilon absorbs float drift from summing frame deltas.
const dueEpsilon = 1e-9

// Handle identifies a scheduled callback.
type Handle struct {
	id  uint64
	gen uint64
}

// Valid reports whether the handle refers to a scheduled callback.
func (h Handle) Valid() bool { return h.id != 0 }

type pending struct {
	id  uint64
	gen uint64
	at  float64
	fn  func()
}

// Timers is a cooperative fire-after-delay scheduler driven by Advance.
// CancelAll bumps the generation, so callbacks scheduled before it never
// run even if they are already due in the current Advance.
type Timers struct {
	now     float64
	gen     uint64
	nextID  uint64
	pending []pending
}

// After schedules fn to run once delay seconds of Advance have elapsed.
func (t *Timers) After(delay float64, fn func()) Handle {
	if t == nil || fn == nil {
		return Handle{}
	}
	if delay < 0 {
		delay = 0
	}
	t.nextID++
	p := pending{id: t.nextID, gen: t.gen, at: t.now + delay, fn: fn}
	t.pending = append(t.pending, p)
	return Handle{id: p.id, gen: p.gen}
}

// Cancel drops a single callback. Unknown or fired handles are ignored.
func (t *Timers) Cancel(h Handle) {
	if t == nil || !h.Valid() {
		return
	}
	for i, p := range t.pending {
		if p.id == h.id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return
		}
	}
}

// CancelAll drops every scheduled callback.
func (t *Timers) CancelAll() {
	if t == nil {
		return
	}
	t.gen++
	t.pending = nil
}

// Pending reports how many callbacks are scheduled.
func (t *Timers) Pending() int {
	if t == nil {
		return 0
	}
	return len(t.pending)
}

// Advance moves the clock forward by dt and runs due callbacks in deadline
// order. Callbacks may schedule or cancel other callbacks; newly scheduled
// ones that fall due within this same step also run.
func (t *Timers) Advance(dt float64) {
	if t == nil {
		return
	}
	if dt > 0 {
		t.now += dt
	}
	for {
		idx := t.nextDue()
		if idx < 0 {
			return
		}
		p := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		if p.gen != t.gen {
			continue
		}
		p.fn()
	}
}

func (t *Timers) nextDue() int {
	best := -1
	for i, p := range t.pending {
		if p.at > t.now+dueEpsilon {
			continue
		}
		if best < 0 || p.at < t.pending[best].at || (p.at == t.pending[best].at && p.id < t.pending[best].id) {
			best = i
		}
	}
	return best
}
