package chaff

import (
	"math"
	"testing"

	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

func newTestSimulator() (*Simulator, *sensor.SimClock) {
	clock := sensor.NewSimClock(0)
	return NewSimulator(DefaultConfig(), clock, nil), clock
}

func TestDeployDampsVelocity(t *testing.T) {
	s, _ := newTestSimulator()

	id := s.Deploy(models.Vec3{Y: 1000}, models.Vec3{X: 200, Y: 50, Z: -100}, 0)
	c, ok := s.Cloud(id)
	if !ok {
		t.Fatalf("Deployed cloud not found")
	}

	if c.Velocity.X != 60 || c.Velocity.Z != -30 {
		t.Errorf("Horizontal velocity should damp to 30%%, got (%v, %v)", c.Velocity.X, c.Velocity.Z)
	}
	if c.Velocity.Y != -3 {
		t.Errorf("Vertical velocity should be the fall rate, got %v", c.Velocity.Y)
	}
	if c.RCS != DefaultConfig().InitialRCS {
		t.Errorf("Omitted RCS should default to %v, got %v", DefaultConfig().InitialRCS, c.RCS)
	}
}

func TestCloudIDsMonotonic(t *testing.T) {
	s, _ := newTestSimulator()

	prev := 0
	for i := 0; i < 5; i++ {
		id := s.Deploy(models.Vec3{Y: 1000}, models.Vec3{}, 0)
		if id <= prev {
			t.Errorf("Cloud IDs must be monotonically increasing, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestFallAndGroundRemoval(t *testing.T) {
	s, clock := newTestSimulator()

	id := s.Deploy(models.Vec3{Y: 50}, models.Vec3{}, 0)
	for i := 0; i < 10; i++ {
		clock.Advance(1)
		s.Update(1)
	}

	c, ok := s.Cloud(id)
	if !ok {
		t.Fatalf("Cloud should still be alive at y=20")
	}
	if math.Abs(c.Position.Y-20) > 1e-9 {
		t.Errorf("Expected altitude 20 after 10 s at 3 m/s, got %v", c.Position.Y)
	}

	// 7 more seconds puts it below ground.
	for i := 0; i < 7; i++ {
		clock.Advance(1)
		s.Update(1)
	}
	if _, ok := s.Cloud(id); ok {
		t.Errorf("Cloud below ground must be removed")
	}
	if s.Count() != 0 {
		t.Errorf("Expected no live clouds, got %d", s.Count())
	}
}

func TestRCSDecayProfile(t *testing.T) {
	cfg := DefaultConfig()
	s, clock := newTestSimulator()

	id := s.Deploy(models.Vec3{Y: 10000}, models.Vec3{}, 0)

	// Constant until bloom time.
	clock.Advance(1)
	s.Update(1)
	c, _ := s.Cloud(id)
	if c.RCS != cfg.InitialRCS {
		t.Errorf("RCS before bloom should stay at %v, got %v", cfg.InitialRCS, c.RCS)
	}

	// Non-increasing afterwards.
	prev := c.RCS
	for i := 0; i < 61; i++ {
		clock.Advance(1)
		s.Update(1)
		c, ok := s.Cloud(id)
		if !ok {
			break
		}
		if c.RCS > prev {
			t.Fatalf("RCS increased from %v to %v at age %v", prev, c.RCS, c.Age)
		}
		if c.RCS < 0 {
			t.Fatalf("RCS went negative: %v", c.RCS)
		}
		prev = c.RCS
	}

	// Exactly zero at bloom+decayWindow: age is 62 s here.
	c, ok := s.Cloud(id)
	if !ok {
		t.Fatalf("Cloud should survive until age exceeds bloom+decay")
	}
	if c.RCS != 0 {
		t.Errorf("RCS at bloom+decayWindow should be exactly 0, got %v", c.RCS)
	}

	// One more tick pushes age past the horizon and removes it.
	clock.Advance(1)
	s.Update(1)
	if _, ok := s.Cloud(id); ok {
		t.Errorf("Cloud past decay horizon must be removed")
	}
}

func TestUpdateZeroDtIsNoOp(t *testing.T) {
	s, _ := newTestSimulator()

	id := s.Deploy(models.Vec3{Y: 500}, models.Vec3{X: 100}, 0)
	before, _ := s.Cloud(id)
	s.Update(0)
	after, _ := s.Cloud(id)

	if before.Position != after.Position {
		t.Errorf("dt=0 must not move clouds: %v -> %v", before.Position, after.Position)
	}
	if after.RCS != before.RCS {
		t.Errorf("dt=0 must not decay RCS: %v -> %v", before.RCS, after.RCS)
	}
}

func TestMultipleExpiryOneTick(t *testing.T) {
	s, clock := newTestSimulator()

	// Three clouds just above ground expire together; one stays up.
	s.Deploy(models.Vec3{Y: 1}, models.Vec3{}, 0)
	s.Deploy(models.Vec3{Y: 2}, models.Vec3{}, 0)
	s.Deploy(models.Vec3{Y: 1.5}, models.Vec3{}, 0)
	high := s.Deploy(models.Vec3{Y: 5000}, models.Vec3{}, 0)

	clock.Advance(2)
	s.Update(2)

	if s.Count() != 1 {
		t.Fatalf("Expected exactly 1 survivor, got %d", s.Count())
	}
	if _, ok := s.Cloud(high); !ok {
		t.Errorf("High cloud should have survived the compact pass")
	}
}

func TestExpiryEventsPublished(t *testing.T) {
	bus := events.NewBus()
	clock := sensor.NewSimClock(0)
	s := NewSimulator(DefaultConfig(), clock, bus)

	var deployed, expired int
	bus.Subscribe(events.ChaffDeployed, 0, func(events.Event) { deployed++ })
	bus.Subscribe(events.ChaffExpired, 0, func(events.Event) { expired++ })

	s.Deploy(models.Vec3{Y: 1}, models.Vec3{}, 0)
	clock.Advance(1)
	s.Update(1)

	if deployed != 1 {
		t.Errorf("Expected 1 deploy event, got %d", deployed)
	}
	if expired != 1 {
		t.Errorf("Expected 1 expiry event, got %d", expired)
	}
}

func TestContactsRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	s, _ := newTestSimulator()

	s.Deploy(models.Vec3{X: 0, Y: 300, Z: 0}, models.Vec3{}, 0)

	contacts := s.Contacts(models.Vec3{X: 0, Y: 300, Z: 0}, 10000, false)
	if len(contacts) != 1 {
		t.Fatalf("Expected exactly 1 contact at zero range, got %d", len(contacts))
	}
	if contacts[0].RCS != cfg.InitialRCS {
		t.Errorf("Contact RCS should equal initial RCS %v, got %v", cfg.InitialRCS, contacts[0].RCS)
	}
	if contacts[0].Altitude != 300 {
		t.Errorf("Expected altitude 300, got %v", contacts[0].Altitude)
	}
}

func TestContactsMTISuppression(t *testing.T) {
	s, _ := newTestSimulator()

	// 100 m² * 0.1 = 10 m², still above the 1 m² floor.
	s.Deploy(models.Vec3{Y: 300}, models.Vec3{}, 0)
	contacts := s.Contacts(models.Vec3{}, 10000, true)
	if len(contacts) != 1 {
		t.Fatalf("Expected suppressed contact to remain visible, got %d", len(contacts))
	}
	if contacts[0].RCS != 10 {
		t.Errorf("Expected suppressed RCS 10, got %v", contacts[0].RCS)
	}

	// 8 m² * 0.1 = 0.8 m² drops below the floor with MTI on.
	s2, _ := newTestSimulator()
	s2.Deploy(models.Vec3{Y: 300}, models.Vec3{}, 8)
	if got := s2.Contacts(models.Vec3{}, 10000, true); len(got) != 0 {
		t.Errorf("Expected MTI to suppress weak cloud, got %d contacts", len(got))
	}
	if got := s2.Contacts(models.Vec3{}, 10000, false); len(got) != 1 {
		t.Errorf("Weak cloud should paint without MTI, got %d contacts", len(got))
	}
}

func TestContactsRangeFilter(t *testing.T) {
	s, _ := newTestSimulator()

	s.Deploy(models.Vec3{X: 50000, Y: 300}, models.Vec3{}, 0)
	if got := s.Contacts(models.Vec3{}, 10000, false); len(got) != 0 {
		t.Errorf("Cloud beyond max range should not paint, got %d contacts", len(got))
	}
}
