// Package sensor defines the host simulation's entity/sensor query
// collaborator as consumed by the EW core, plus an in-memory world used by
// the scenarios and tests.
package sensor

import "github.com/samsim/ew-simulations/pkg/models"

// Handle refers to a platform owned by the host simulation.
type Handle string

// Provider is the entity/sensor query collaborator. All calls are
// synchronous; implementations must tolerate unknown handles by returning
// zero values and false.
type Provider interface {
	// FindPlatformsInRadius returns handles for platforms of the given
	// category within radius metres of center.
	FindPlatformsInRadius(center models.Vec3, radius float64, category models.Category) []Handle

	PlatformPosition(h Handle) (models.Vec3, bool)
	PlatformTypeName(h Handle) (string, bool)
	PlatformAffiliation(h Handle) (models.Coalition, bool)
	PlatformID(h Handle) (string, bool)
}

// Clock supplies simulation time in seconds. The EW core never reads wall
// time directly.
type Clock interface {
	Now() float64
}

// SimClock is a manually advanced clock for tick-driven runs and tests.
type SimClock struct {
	t float64
}

// NewSimClock creates a clock starting at the given time in seconds.
func NewSimClock(start float64) *SimClock {
	return &SimClock{t: start}
}

// Now returns the current simulation time in seconds.
func (c *SimClock) Now() float64 { return c.t }

// Advance moves the clock forward by dt seconds.
func (c *SimClock) Advance(dt float64) { c.t += dt }
