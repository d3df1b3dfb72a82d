// Package chaff owns the lifecycle of deployed chaff clouds: position
// integration, RCS bloom/decay and expiry.
package chaff

import (
	"sync"

	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

// Config holds the chaff tuning constants.
type Config struct {
	InitialRCS        float64 `yaml:"initial_rcs"`        // m², used when deploy omits RCS
	BloomTimeS        float64 `yaml:"bloom_time_s"`       // RCS holds at initial value until bloom
	DecayWindowS      float64 `yaml:"decay_window_s"`     // linear decay span after bloom
	FallRateMS        float64 `yaml:"fall_rate_ms"`       // fixed descent rate
	HorizontalDamping float64 `yaml:"horizontal_damping"` // fraction of launch velocity retained
	VisibilityFloor   float64 `yaml:"visibility_floor"`   // m², contacts below this don't paint
	MTISuppression    float64 `yaml:"mti_suppression"`    // RCS factor applied when MTI is on
}

// DefaultConfig returns the reference chaff tuning.
func DefaultConfig() Config {
	return Config{
		InitialRCS:        100,
		BloomTimeS:        2,
		DecayWindowS:      60,
		FallRateMS:        3,
		HorizontalDamping: 0.3,
		VisibilityFloor:   1,
		MTISuppression:    0.1,
	}
}

// Cloud is one deployed chaff bundle. Clouds are mutated only by Update.
type Cloud struct {
	ID         int
	Position   models.Vec3
	Velocity   models.Vec3
	RCS        float64
	InitialRCS float64
	CreatedAt  float64
	Age        float64
}

// Contact is the radar-facing view of a visible cloud.
type Contact struct {
	CloudID  int
	Bearing  float64
	RangeM   float64
	Altitude float64
	RCS      float64
	Velocity models.Vec3
}

// Simulator owns the global chaff cloud collection. Single writer: Update
// and Deploy run on the tick/command path; readers get copies.
type Simulator struct {
	cfg   Config
	clock sensor.Clock
	bus   *events.Bus

	mu     sync.RWMutex
	clouds []*Cloud
	nextID int
}

// NewSimulator creates an empty chaff simulator. The bus may be nil when no
// one listens for chaff events.
func NewSimulator(cfg Config, clock sensor.Clock, bus *events.Bus) *Simulator {
	return &Simulator{cfg: cfg, clock: clock, bus: bus, nextID: 1}
}

// Deploy creates a cloud at the given position. Horizontal launch velocity
// is damped; descent is the configured fall rate. A non-positive rcs selects
// the configured initial RCS. Returns the new cloud's ID.
func (s *Simulator) Deploy(pos, vel models.Vec3, rcs float64) int {
	if rcs <= 0 {
		rcs = s.cfg.InitialRCS
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	cloud := &Cloud{
		ID:       id,
		Position: pos,
		Velocity: models.Vec3{
			X: vel.X * s.cfg.HorizontalDamping,
			Y: -s.cfg.FallRateMS,
			Z: vel.Z * s.cfg.HorizontalDamping,
		},
		RCS:        rcs,
		InitialRCS: rcs,
		CreatedAt:  s.clock.Now(),
	}
	s.clouds = append(s.clouds, cloud)
	s.mu.Unlock()

	s.publish(events.ChaffDeployed, cloud)
	return id
}

// Update advances every cloud by dt seconds: linear position integration,
// age tracking, RCS decay, and expiry. Expired clouds are collected in a
// mark pass and compacted afterwards so removal never disturbs iteration
// and never double-removes within a tick.
func (s *Simulator) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}

	s.mu.Lock()
	var expired []*Cloud
	survivors := s.clouds[:0]
	for _, c := range s.clouds {
		c.Position = c.Position.Add(c.Velocity.Scale(dt))
		c.Age += dt
		c.RCS = s.rcsAt(c.InitialRCS, c.Age)

		if c.Age > s.cfg.BloomTimeS+s.cfg.DecayWindowS || c.Position.Y < 0 {
			expired = append(expired, c)
			continue
		}
		survivors = append(survivors, c)
	}
	s.clouds = survivors
	s.mu.Unlock()

	for _, c := range expired {
		s.publish(events.ChaffExpired, c)
	}
}

// rcsAt applies the bloom/decay profile: constant until bloom time, then a
// linear ramp to exactly zero at bloom+decayWindow. Never negative.
func (s *Simulator) rcsAt(initial, age float64) float64 {
	if age <= s.cfg.BloomTimeS {
		return initial
	}
	frac := 1.0 - (age-s.cfg.BloomTimeS)/s.cfg.DecayWindowS
	if frac < 0 {
		frac = 0
	}
	return initial * frac
}

// Contacts returns the clouds a radar would paint: within range, effective
// RCS above the visibility floor. MTI attenuates the slow-falling clouds by
// the configured suppression factor before the floor is re-applied.
func (s *Simulator) Contacts(radarPos models.Vec3, maxRangeM float64, mtiEnabled bool) []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Contact
	for _, c := range s.clouds {
		rangeM := models.Distance(radarPos, c.Position)
		if rangeM > maxRangeM {
			continue
		}
		rcs := c.RCS
		if mtiEnabled {
			rcs *= s.cfg.MTISuppression
		}
		if rcs <= s.cfg.VisibilityFloor {
			continue
		}
		out = append(out, Contact{
			CloudID:  c.ID,
			Bearing:  models.Bearing(radarPos, c.Position),
			RangeM:   rangeM,
			Altitude: c.Position.Y,
			RCS:      rcs,
			Velocity: c.Velocity,
		})
	}
	return out
}

// Count returns the number of live clouds.
func (s *Simulator) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clouds)
}

// Cloud returns a copy of a live cloud by ID.
func (s *Simulator) Cloud(id int) (Cloud, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clouds {
		if c.ID == id {
			return *c, true
		}
	}
	return Cloud{}, false
}

func (s *Simulator) publish(name string, c *Cloud) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Name: name, Fields: map[string]interface{}{
		"cloudId":  c.ID,
		"altitude": c.Position.Y,
		"rcs":      c.RCS,
		"age":      c.Age,
	}})
}
