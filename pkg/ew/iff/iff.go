// Package iff implements the interrogation/response state machine:
// NONE → PENDING → {FRIENDLY | HOSTILE | UNKNOWN} → NONE once the response
// validity window elapses.
package iff

import (
	"fmt"
	"sync"

	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

// Mode is an interrogation mode.
type Mode string

const (
	Mode1  Mode = "MODE_1"
	Mode2  Mode = "MODE_2"
	Mode3A Mode = "MODE_3A"
	Mode4  Mode = "MODE_4"
)

// Classification is the per-target response state.
type Classification string

const (
	None     Classification = "NONE"
	Pending  Classification = "PENDING"
	Friendly Classification = "FRIENDLY"
	Hostile  Classification = "HOSTILE"
	Unknown  Classification = "UNKNOWN"
)

// Config holds the IFF tuning constants. FriendlyCoalition makes the
// affiliation-to-classification mapping explicit configuration instead of a
// hardcoded direction.
type Config struct {
	MaxRangeM         float64          `yaml:"max_range_m"`
	ResponseDelayS    float64          `yaml:"response_delay_s"`
	ValidityWindowS   float64          `yaml:"validity_window_s"`
	LookupRadiusM     float64          `yaml:"lookup_radius_m"`
	FriendlyCoalition models.Coalition `yaml:"friendly_coalition"`
	MaxQueryLog       int              `yaml:"max_query_log"`
}

// DefaultConfig returns the reference IFF tuning for a RED-side SAM site.
func DefaultConfig() Config {
	return Config{
		MaxRangeM:         100000,
		ResponseDelayS:    0.5,
		ValidityWindowS:   30,
		LookupRadiusM:     500,
		FriendlyCoalition: models.CoalitionRed,
		MaxQueryLog:       512,
	}
}

// Query is one interrogation audit record.
type Query struct {
	ID        string
	RadarID   string
	TargetID  string
	Mode      Mode
	CreatedAt float64
	Answered  bool
}

// Record is the latest response for one target. The classification is
// visible only inside [VisibleAt, ExpiresAt].
type Record struct {
	TargetID       string
	Classification Classification
	Mode           Mode
	VisibleAt      float64
	ExpiresAt      float64
}

// Subsystem owns the per-target response table and the interrogation log.
type Subsystem struct {
	cfg      Config
	clock    sensor.Clock
	provider sensor.Provider
	bus      *events.Bus

	mu      sync.RWMutex
	queries []Query
	records map[string]*Record
}

// NewSubsystem creates an IFF subsystem. The bus may be nil.
func NewSubsystem(cfg Config, clock sensor.Clock, provider sensor.Provider, bus *events.Bus) *Subsystem {
	return &Subsystem{
		cfg:      cfg,
		clock:    clock,
		provider: provider,
		bus:      bus,
		records:  make(map[string]*Record),
	}
}

// Interrogate issues an interrogation against a target. Beyond the maximum
// range it returns None and records nothing. Otherwise it looks the target
// up through the sensor collaborator, classifies it against the configured
// friendly coalition, and stores a response that becomes visible after the
// response delay. The immediate return value is the status a query at the
// current time would see.
func (s *Subsystem) Interrogate(radarID, targetID string, targetPos, radarPos models.Vec3, mode Mode) Classification {
	now := s.clock.Now()

	if models.Distance(radarPos, targetPos) > s.cfg.MaxRangeM {
		return None
	}

	cls := s.classify(targetID, targetPos)

	s.mu.Lock()
	s.queries = append(s.queries, Query{
		ID:        fmt.Sprintf("%s:%s:%.3f", radarID, targetID, now),
		RadarID:   radarID,
		TargetID:  targetID,
		Mode:      mode,
		CreatedAt: now,
		Answered:  true,
	})
	// Keep the audit log bounded; drop the oldest entries.
	if s.cfg.MaxQueryLog > 0 && len(s.queries) > s.cfg.MaxQueryLog {
		s.queries = append(s.queries[:0], s.queries[len(s.queries)-s.cfg.MaxQueryLog:]...)
	}

	s.records[targetID] = &Record{
		TargetID:       targetID,
		Classification: cls,
		Mode:           mode,
		VisibleAt:      now + s.cfg.ResponseDelayS,
		ExpiresAt:      now + s.cfg.ValidityWindowS,
	}
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(events.Event{Name: events.IFFResponse, Fields: map[string]interface{}{
			"radarId":        radarID,
			"targetId":       targetID,
			"mode":           string(mode),
			"classification": string(cls),
		}})
	}

	return s.Response(targetID)
}

// classify resolves the target entity near its reported position and maps
// its affiliation onto a classification. Targets the sensor cannot confirm
// come back Unknown.
func (s *Subsystem) classify(targetID string, targetPos models.Vec3) Classification {
	for _, h := range s.provider.FindPlatformsInRadius(targetPos, s.cfg.LookupRadiusM, "") {
		id, ok := s.provider.PlatformID(h)
		if !ok || id != targetID {
			continue
		}
		coalition, ok := s.provider.PlatformAffiliation(h)
		if !ok {
			return Unknown
		}
		switch coalition {
		case s.cfg.FriendlyCoalition:
			return Friendly
		case models.CoalitionNeutral:
			return Unknown
		default:
			return Hostile
		}
	}
	return Unknown
}

// Response returns the current per-target status: Pending before the
// response delay elapses, None when no record exists or the validity window
// has passed, otherwise the stored classification.
func (s *Subsystem) Response(targetID string) Classification {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[targetID]
	if !ok || now > rec.ExpiresAt {
		return None
	}
	if now < rec.VisibleAt {
		return Pending
	}
	return rec.Classification
}

// Responses returns the current status for every target with a live record.
// Expired records are omitted.
func (s *Subsystem) Responses() map[string]Classification {
	now := s.clock.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Classification, len(s.records))
	for id, rec := range s.records {
		if now > rec.ExpiresAt {
			continue
		}
		if now < rec.VisibleAt {
			out[id] = Pending
		} else {
			out[id] = rec.Classification
		}
	}
	return out
}

// Queries returns a copy of the interrogation audit log.
func (s *Subsystem) Queries() []Query {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Query, len(s.queries))
	copy(out, s.queries)
	return out
}
