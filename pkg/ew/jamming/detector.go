// Package jamming scans for emitting platforms around a radar and turns
// them into direction-of-arrival strobes for the scope display.
package jamming

import (
	"math"
	"math/rand"
	"sync"

	"github.com/samsim/ew-simulations/pkg/ew/catalog"
	"github.com/samsim/ew-simulations/pkg/ew/rf"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

const (
	minStrobeWidthDeg = 5.0
	maxStrobeWidthDeg = 30.0
	bearingJitterDeg  = 1.5

	// Received-power window used to normalize strobe intensity. A one-way
	// budget below the floor paints as a minimum-width strobe.
	intensityFloorDB = -60.0
	intensitySpanDB  = 60.0
)

// Strobe is one direction-of-arrival line on the scope. Strobes are scan
// products, not tracks: the whole set is replaced on every scan and no
// per-source history is kept.
type Strobe struct {
	Bearing   float64 // degrees, [0,360)
	WidthDeg  float64
	Intensity float64 // normalized [0,1]
	RangeM    float64
	Technique catalog.Technique
	SourceID  string
}

// Detector performs per-radar scans and owns the latest strobe snapshot for
// each radar.
type Detector struct {
	provider sensor.Provider
	catalog  *catalog.Catalog
	rng      *rand.Rand

	mu      sync.RWMutex
	strobes map[string][]Strobe
}

// NewDetector creates a detector. The rng drives the bearing jitter; pass a
// seeded source for deterministic runs.
func NewDetector(provider sensor.Provider, cat *catalog.Catalog, rng *rand.Rand) *Detector {
	return &Detector{
		provider: provider,
		catalog:  cat,
		rng:      rng,
		strobes:  make(map[string][]Strobe),
	}
}

// Scan sweeps for airborne jamming sources within maxRangeM of the radar and
// replaces the radar's strobe snapshot wholesale. The new strobe list is
// returned for the caller's convenience.
func (d *Detector) Scan(radarID string, radarPos models.Vec3, band rf.Band, maxRangeM float64) []Strobe {
	handles := d.provider.FindPlatformsInRadius(radarPos, maxRangeM, models.CategoryAir)

	found := make([]Strobe, 0, len(handles))
	for _, h := range handles {
		typeName, ok := d.provider.PlatformTypeName(h)
		if !ok {
			continue
		}
		profileID, ok := d.catalog.JammerForPlatform(typeName)
		if !ok {
			continue
		}
		profile := d.catalog.Profile(profileID)
		if !profile.EffectiveAgainst(band) {
			continue
		}

		pos, ok := d.provider.PlatformPosition(h)
		if !ok {
			continue
		}
		sourceID, _ := d.provider.PlatformID(h)

		rangeM := models.Distance(radarPos, pos)
		intensity := receivedIntensity(profile, rangeM)
		bearing := models.Bearing(radarPos, pos)
		jitter := (d.rng.Float64()*2.0 - 1.0) * bearingJitterDeg

		found = append(found, Strobe{
			Bearing:   models.NormalizeDegrees(bearing + jitter),
			WidthDeg:  strobeWidth(intensity),
			Intensity: intensity,
			RangeM:    rangeM,
			Technique: profile.Technique,
			SourceID:  sourceID,
		})
	}

	d.mu.Lock()
	d.strobes[radarID] = found
	d.mu.Unlock()

	return d.copyStrobes(found)
}

// Strobes returns a copy of the latest scan snapshot for a radar. Unknown
// radars yield an empty list.
func (d *Detector) Strobes(radarID string) []Strobe {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyStrobes(d.strobes[radarID])
}

func (d *Detector) copyStrobes(in []Strobe) []Strobe {
	out := make([]Strobe, len(in))
	copy(out, in)
	return out
}

// receivedIntensity maps the one-way received power of the emitter onto
// [0,1] using a fixed dB window. This is a display heuristic, not a
// receiver model.
func receivedIntensity(p catalog.JammerProfile, rangeM float64) float64 {
	r := math.Max(rangeM, 1.0)
	receivedDB := p.PowerDBW + p.GainDBi - 20.0*math.Log10(r)
	return models.Clamp((receivedDB-intensityFloorDB)/intensitySpanDB, 0.0, 1.0)
}

// strobeWidth widens the painted strobe with intensity, clamped to the
// scope's [5°,30°] rendering window.
func strobeWidth(intensity float64) float64 {
	return models.Clamp(minStrobeWidthDeg+25.0*intensity, minStrobeWidthDeg, maxStrobeWidthDeg)
}
