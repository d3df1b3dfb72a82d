package sensor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/samsim/ew-simulations/pkg/models"
)

// Platform is a simulated world object tracked by the in-memory world.
type Platform struct {
	ID        uuid.UUID
	Name      string
	TypeName  string
	Category  models.Category
	Coalition models.Coalition
	Position  models.Vec3
	Velocity  models.Vec3
}

// World is an in-memory Provider implementation with simple linear motion.
// The scenario driver owns it; the EW core only sees the Provider interface.
type World struct {
	mu        sync.RWMutex
	platforms map[Handle]*Platform
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{platforms: make(map[Handle]*Platform)}
}

// AddPlatform registers a platform and returns its handle. A zero ID is
// assigned a fresh UUID.
func (w *World) AddPlatform(p Platform) Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	h := Handle(p.ID.String())
	cp := p
	w.platforms[h] = &cp
	return h
}

// RemovePlatform deletes a platform. Unknown handles are ignored.
func (w *World) RemovePlatform(h Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.platforms, h)
}

// Step advances every platform along its velocity by dt seconds.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.platforms {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}
}

// SetVelocity updates a platform's velocity. Unknown handles are ignored.
func (w *World) SetVelocity(h Handle, v models.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.platforms[h]; ok {
		p.Velocity = v
	}
}

// FindPlatformsInRadius implements Provider.
func (w *World) FindPlatformsInRadius(center models.Vec3, radius float64, category models.Category) []Handle {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []Handle
	for h, p := range w.platforms {
		if category != "" && p.Category != category {
			continue
		}
		if models.Distance(center, p.Position) <= radius {
			out = append(out, h)
		}
	}
	return out
}

// PlatformPosition implements Provider.
func (w *World) PlatformPosition(h Handle) (models.Vec3, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.platforms[h]; ok {
		return p.Position, true
	}
	return models.Vec3{}, false
}

// PlatformTypeName implements Provider.
func (w *World) PlatformTypeName(h Handle) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.platforms[h]; ok {
		return p.TypeName, true
	}
	return "", false
}

// PlatformAffiliation implements Provider.
func (w *World) PlatformAffiliation(h Handle) (models.Coalition, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.platforms[h]; ok {
		return p.Coalition, true
	}
	return "", false
}

// PlatformID implements Provider.
func (w *World) PlatformID(h Handle) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.platforms[h]; ok {
		return p.ID.String(), true
	}
	return "", false
}
