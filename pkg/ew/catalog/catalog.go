// Package catalog holds the static jammer emitter profiles and the
// platform-type bindings that decide which aircraft carry which jammer.
package catalog

import (
	"strings"

	"github.com/samsim/ew-simulations/pkg/ew/rf"
)

// Technique enumerates the jamming techniques modeled by the detector.
type Technique string

const (
	TechniqueBarrageNoise      Technique = "BARRAGE_NOISE"
	TechniqueSpotNoise         Technique = "SPOT_NOISE"
	TechniqueRangeDeception    Technique = "RANGE_DECEPTION"
	TechniqueVelocityDeception Technique = "VELOCITY_DECEPTION"
	TechniqueChaff             Technique = "CHAFF"
	TechniqueDRFM              Technique = "DRFM"
)

// DefaultProfileID is the fallback profile substituted for any unknown
// jammer identifier.
const DefaultProfileID = "default"

// JammerProfile describes one emitter. Profiles are immutable catalog data.
type JammerProfile struct {
	ID           string
	Technique    Technique
	PowerDBW     float64
	GainDBi      float64
	BandwidthMHz float64
	Bands        []rf.Band
}

// Emitter converts the profile into the rf package's power-budget terms.
func (p JammerProfile) Emitter() rf.Jammer {
	return rf.Jammer{PowerDBW: p.PowerDBW, GainDBi: p.GainDBi, Bands: p.Bands}
}

// EffectiveAgainst reports whether the profile's technique covers the band.
func (p JammerProfile) EffectiveAgainst(band rf.Band) bool {
	return p.Emitter().Effective(band)
}

// PlatformRule binds a platform type-name substring to a jammer profile.
// Rules are evaluated in declared order; the first match wins.
type PlatformRule struct {
	Pattern   string
	ProfileID string
}

// Catalog is the static lookup of jammer profiles and platform bindings.
type Catalog struct {
	profiles map[string]JammerProfile
	rules    []PlatformRule
}

// New builds a catalog from explicit data. The default profile is added if
// the caller did not supply one.
func New(profiles []JammerProfile, rules []PlatformRule) *Catalog {
	c := &Catalog{
		profiles: make(map[string]JammerProfile, len(profiles)+1),
		rules:    append([]PlatformRule(nil), rules...),
	}
	for _, p := range profiles {
		c.profiles[p.ID] = p
	}
	if _, ok := c.profiles[DefaultProfileID]; !ok {
		c.profiles[DefaultProfileID] = defaultProfile
	}
	return c
}

// NewBuiltin returns the catalog of stock emitters and platform bindings.
func NewBuiltin() *Catalog {
	return New(builtinProfiles, builtinRules)
}

// Profile returns the profile for an identifier, substituting the default
// profile for unknown identifiers.
func (c *Catalog) Profile(id string) JammerProfile {
	if p, ok := c.profiles[id]; ok {
		return p
	}
	return c.profiles[DefaultProfileID]
}

// JammerForPlatform resolves a platform type name to a jammer profile ID via
// the ordered rule list. The second return is false when no rule matches.
func (c *Catalog) JammerForPlatform(typeName string) (string, bool) {
	for _, r := range c.rules {
		if strings.Contains(typeName, r.Pattern) {
			return r.ProfileID, true
		}
	}
	return "", false
}

// HasJammer reports whether a platform type carries any jammer.
func (c *Catalog) HasJammer(typeName string) bool {
	_, ok := c.JammerForPlatform(typeName)
	return ok
}

var defaultProfile = JammerProfile{
	ID:           DefaultProfileID,
	Technique:    TechniqueSpotNoise,
	PowerDBW:     20,
	GainDBi:      6,
	BandwidthMHz: 20,
	Bands:        []rf.Band{rf.BandE, rf.BandF},
}

// Stock emitter profiles. Power figures are effective radiated power class
// estimates, not classified performance data.
var builtinProfiles = []JammerProfile{
	{
		ID:           "alq99",
		Technique:    TechniqueBarrageNoise,
		PowerDBW:     40,
		GainDBi:      10,
		BandwidthMHz: 500,
		Bands:        []rf.Band{rf.BandD, rf.BandE, rf.BandF, rf.BandG},
	},
	{
		ID:           "alq131",
		Technique:    TechniqueSpotNoise,
		PowerDBW:     30,
		GainDBi:      8,
		BandwidthMHz: 50,
		Bands:        []rf.Band{rf.BandE, rf.BandF, rf.BandG, rf.BandI},
	},
	{
		ID:           "alq165",
		Technique:    TechniqueRangeDeception,
		PowerDBW:     27,
		GainDBi:      8,
		BandwidthMHz: 40,
		Bands:        []rf.Band{rf.BandG, rf.BandH, rf.BandI, rf.BandJ},
	},
	{
		ID:           "alq184",
		Technique:    TechniqueDRFM,
		PowerDBW:     33,
		GainDBi:      10,
		BandwidthMHz: 80,
		Bands:        []rf.Band{rf.BandG, rf.BandH, rf.BandI, rf.BandJ},
	},
	{
		ID:           "sps141",
		Technique:    TechniqueVelocityDeception,
		PowerDBW:     25,
		GainDBi:      6,
		BandwidthMHz: 30,
		Bands:        []rf.Band{rf.BandE, rf.BandF, rf.BandG},
	},
	{
		ID:           "sorbtsiya",
		Technique:    TechniqueDRFM,
		PowerDBW:     31,
		GainDBi:      9,
		BandwidthMHz: 100,
		Bands:        []rf.Band{rf.BandF, rf.BandG, rf.BandH, rf.BandI},
	},
	defaultProfile,
}

// Platform bindings, most specific first. Substring match against the host
// simulation's platform type names.
var builtinRules = []PlatformRule{
	{Pattern: "EA-18G", ProfileID: "alq99"},
	{Pattern: "EA-6B", ProfileID: "alq99"},
	{Pattern: "FA-18", ProfileID: "alq165"},
	{Pattern: "F/A-18", ProfileID: "alq165"},
	{Pattern: "F-16", ProfileID: "alq131"},
	{Pattern: "A-10", ProfileID: "alq131"},
	{Pattern: "Tornado", ProfileID: "alq184"},
	{Pattern: "Su-25", ProfileID: "sps141"},
	{Pattern: "Su-17", ProfileID: "sps141"},
	{Pattern: "Su-27", ProfileID: "sorbtsiya"},
	{Pattern: "Su-30", ProfileID: "sorbtsiya"},
}
