package jamming

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samsim/ew-simulations/pkg/ew/catalog"
	"github.com/samsim/ew-simulations/pkg/ew/rf"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

func testWorld() (*sensor.World, sensor.Handle) {
	w := sensor.NewWorld()
	h := w.AddPlatform(sensor.Platform{
		Name:      "Jammer 1",
		TypeName:  "EA-18G",
		Category:  models.CategoryAir,
		Coalition: models.CoalitionBlue,
		Position:  models.Vec3{X: 30000, Y: 6000, Z: 0},
	})
	return w, h
}

func newTestDetector(w *sensor.World) *Detector {
	return NewDetector(w, catalog.NewBuiltin(), rand.New(rand.NewSource(1)))
}

func TestScanDetectsEffectiveJammer(t *testing.T) {
	w, h := testWorld()
	d := newTestDetector(w)

	strobes := d.Scan("sam-1", models.Vec3{}, rf.BandE, 60000)
	if len(strobes) != 1 {
		t.Fatalf("Expected 1 strobe, got %d", len(strobes))
	}

	s := strobes[0]
	wantID, _ := w.PlatformID(h)
	if s.SourceID != wantID {
		t.Errorf("Expected source %q, got %q", wantID, s.SourceID)
	}
	if s.Technique != catalog.TechniqueBarrageNoise {
		t.Errorf("Expected barrage noise technique, got %q", s.Technique)
	}

	// Jammer sits due +X of the radar; jitter is bounded by ±1.5°.
	diff := math.Abs(s.Bearing)
	if diff > 180 {
		diff = 360 - diff
	}
	if diff > bearingJitterDeg {
		t.Errorf("Bearing %v exceeds jitter bound around 0°", s.Bearing)
	}

	if s.WidthDeg < minStrobeWidthDeg || s.WidthDeg > maxStrobeWidthDeg {
		t.Errorf("Strobe width %v outside [%v,%v]", s.WidthDeg, minStrobeWidthDeg, maxStrobeWidthDeg)
	}
	if s.Intensity < 0 || s.Intensity > 1 {
		t.Errorf("Intensity %v outside [0,1]", s.Intensity)
	}
	if math.Abs(s.RangeM-math.Sqrt(30000*30000+6000*6000)) > 1e-6 {
		t.Errorf("Unexpected strobe range %v", s.RangeM)
	}
}

func TestScanSkipsOffBandJammer(t *testing.T) {
	w, _ := testWorld()
	d := newTestDetector(w)

	// alq99 does not cover band J.
	strobes := d.Scan("sam-1", models.Vec3{}, rf.BandJ, 60000)
	if len(strobes) != 0 {
		t.Errorf("Expected no strobes for off-band radar, got %d", len(strobes))
	}
}

func TestScanSkipsPlatformsWithoutJammer(t *testing.T) {
	w := sensor.NewWorld()
	w.AddPlatform(sensor.Platform{
		TypeName: "C-130",
		Category: models.CategoryAir,
		Position: models.Vec3{X: 10000, Y: 5000},
	})
	d := newTestDetector(w)

	if strobes := d.Scan("sam-1", models.Vec3{}, rf.BandE, 60000); len(strobes) != 0 {
		t.Errorf("Expected no strobes for clean platform, got %d", len(strobes))
	}
}

func TestScanRespectsMaxRange(t *testing.T) {
	w, _ := testWorld()
	d := newTestDetector(w)

	if strobes := d.Scan("sam-1", models.Vec3{}, rf.BandE, 20000); len(strobes) != 0 {
		t.Errorf("Jammer beyond max range should not paint, got %d strobes", len(strobes))
	}
}

func TestSnapshotReplacedWholesale(t *testing.T) {
	w, h := testWorld()
	d := newTestDetector(w)

	d.Scan("sam-1", models.Vec3{}, rf.BandE, 60000)
	if got := d.Strobes("sam-1"); len(got) != 1 {
		t.Fatalf("Expected 1 strobe after first scan, got %d", len(got))
	}

	// Source leaves; the next scan must replace, not append.
	w.RemovePlatform(h)
	d.Scan("sam-1", models.Vec3{}, rf.BandE, 60000)
	if got := d.Strobes("sam-1"); len(got) != 0 {
		t.Errorf("Expected empty snapshot after source departed, got %d strobes", len(got))
	}
}

func TestStrobesReturnsCopy(t *testing.T) {
	w, _ := testWorld()
	d := newTestDetector(w)

	d.Scan("sam-1", models.Vec3{}, rf.BandE, 60000)
	first := d.Strobes("sam-1")
	first[0].Bearing = 999

	second := d.Strobes("sam-1")
	if second[0].Bearing == 999 {
		t.Errorf("Mutating a returned snapshot must not affect the detector's state")
	}
}

func TestStrobesUnknownRadar(t *testing.T) {
	w, _ := testWorld()
	d := newTestDetector(w)

	if got := d.Strobes("never-scanned"); len(got) != 0 {
		t.Errorf("Unknown radar should yield empty snapshot, got %d strobes", len(got))
	}
}

func TestIntensityFallsWithRange(t *testing.T) {
	p := catalog.NewBuiltin().Profile("alq99")

	near := receivedIntensity(p, 5000)
	far := receivedIntensity(p, 50000)
	if far >= near {
		t.Errorf("Intensity should fall with range: %v at 5 km, %v at 50 km", near, far)
	}
	if w := strobeWidth(1.5); w != maxStrobeWidthDeg {
		t.Errorf("Width must clamp at %v, got %v", maxStrobeWidthDeg, w)
	}
	if w := strobeWidth(0); w != minStrobeWidthDeg {
		t.Errorf("Width must clamp at %v, got %v", minStrobeWidthDeg, w)
	}
}
