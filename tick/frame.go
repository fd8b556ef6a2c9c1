// Package tick holds the per-frame context and the cooperative scheduling
// primitives shared by the progression engines.
package tick

import "github.com/jakecoffman/cp"

// Frame is the host-owned snapshot handed to every system on a tick. It
// replaces ambient globals: anything a system needs about the surrounding
// game field arrives here.
type Frame struct {
	// DT is the time since the previous frame, in seconds.
	DT float64
	// Elapsed is the session time at the end of this frame, in seconds.
	Elapsed float64
	// Round is the 0-based round counter of the game field.
	Round int
	// Player is the player position on the ground plane.
	Player cp.Vector
}
