package catalog

import (
	"testing"

	"github.com/samsim/ew-simulations/pkg/ew/rf"
)

func TestProfileFallsBackToDefault(t *testing.T) {
	c := NewBuiltin()

	p := c.Profile("no-such-pod")
	if p.ID != DefaultProfileID {
		t.Errorf("Expected default profile for unknown ID, got %q", p.ID)
	}

	known := c.Profile("alq99")
	if known.ID != "alq99" {
		t.Errorf("Expected alq99 profile, got %q", known.ID)
	}
	if known.Technique != TechniqueBarrageNoise {
		t.Errorf("Expected barrage noise technique for alq99, got %q", known.Technique)
	}
}

func TestJammerForPlatformFirstMatchWins(t *testing.T) {
	c := New(
		[]JammerProfile{
			{ID: "first", Technique: TechniqueSpotNoise, Bands: []rf.Band{rf.BandE}},
			{ID: "second", Technique: TechniqueDRFM, Bands: []rf.Band{rf.BandE}},
		},
		[]PlatformRule{
			{Pattern: "F-16CM", ProfileID: "first"},
			{Pattern: "F-16", ProfileID: "second"},
		},
	)

	id, ok := c.JammerForPlatform("F-16CM bl.50")
	if !ok || id != "first" {
		t.Errorf("Expected the more specific rule to win, got %q ok=%v", id, ok)
	}

	id, ok = c.JammerForPlatform("F-16A")
	if !ok || id != "second" {
		t.Errorf("Expected the broader rule to match, got %q ok=%v", id, ok)
	}
}

func TestHasJammer(t *testing.T) {
	c := NewBuiltin()

	tests := []struct {
		typeName string
		want     bool
	}{
		{"EA-18G Growler", true},
		{"F-16C bl.52d", true},
		{"Su-25T", true},
		{"C-130", false},
		{"Mi-8MT", false},
	}

	for _, tt := range tests {
		if got := c.HasJammer(tt.typeName); got != tt.want {
			t.Errorf("HasJammer(%q) = %v, want %v", tt.typeName, got, tt.want)
		}
	}
}

func TestEffectiveAgainst(t *testing.T) {
	c := NewBuiltin()

	p := c.Profile("alq99")
	if !p.EffectiveAgainst(rf.BandE) {
		t.Errorf("alq99 should cover band E")
	}
	if p.EffectiveAgainst(rf.BandJ) {
		t.Errorf("alq99 should not cover band J")
	}
}

func TestNewAlwaysCarriesDefault(t *testing.T) {
	c := New(nil, nil)
	if p := c.Profile("anything"); p.ID != DefaultProfileID {
		t.Errorf("Catalog without explicit default must still resolve %q, got %q", DefaultProfileID, p.ID)
	}
}
