// Package eccm stores per-radar counter-countermeasure settings and derives
// the aggregate processing gain they grant against jamming.
package eccm

import (
	"fmt"
	"sync"

	"github.com/samsim/ew-simulations/pkg/events"
)

// Parameter names accepted by SetParameter.
const (
	ParamFrequencyAgility = "frequency_agility"
	ParamPulseCompression = "pulse_compression"
	ParamSidelobeBlanking = "sidelobe_blanking"
	ParamSTCLevel         = "stc_level"
	ParamFTCLevel         = "ftc_level"
	ParamMTI              = "mti"
	ParamCFAR             = "cfar"
)

// Gains holds the fixed per-feature dB bonuses. The bonuses stack linearly;
// no diminishing-returns interaction is modeled.
type Gains struct {
	FrequencyAgilityDB float64 `yaml:"frequency_agility_db"`
	PulseCompressionDB float64 `yaml:"pulse_compression_db"`
	SidelobeBlankingDB float64 `yaml:"sidelobe_blanking_db"`
}

// DefaultGains returns the reference bonus constants.
func DefaultGains() Gains {
	return Gains{
		FrequencyAgilityDB: 8,
		PulseCompressionDB: 10,
		SidelobeBlankingDB: 6,
	}
}

// Profile is one radar's ECCM configuration. STC/FTC/MTI/CFAR are stored
// for other subsystems to read (chaff MTI suppression, display); they do
// not contribute to the aggregate gain.
type Profile struct {
	FrequencyAgility bool    `json:"frequencyAgility"`
	PulseCompression bool    `json:"pulseCompression"`
	SidelobeBlanking bool    `json:"sidelobeBlanking"`
	STCLevel         float64 `json:"stcLevel"`
	FTCLevel         float64 `json:"ftcLevel"`
	MTIEnabled       bool    `json:"mtiEnabled"`
	CFAREnabled      bool    `json:"cfarEnabled"`
}

func defaultProfile() *Profile {
	return &Profile{STCLevel: 0.5}
}

// Registry owns the per-radar ECCM profiles.
type Registry struct {
	gains Gains
	bus   *events.Bus

	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewRegistry creates an empty registry with the given bonus constants.
func NewRegistry(gains Gains, bus *events.Bus) *Registry {
	return &Registry{gains: gains, bus: bus, profiles: make(map[string]*Profile)}
}

// Ensure creates the default profile for a radar if absent. Idempotent.
func (r *Registry) Ensure(radarID string) {
	r.mu.Lock()
	r.ensureLocked(radarID)
	r.mu.Unlock()
}

func (r *Registry) ensureLocked(radarID string) *Profile {
	p, ok := r.profiles[radarID]
	if !ok {
		p = defaultProfile()
		r.profiles[radarID] = p
	}
	return p
}

// SetParameter mutates one named setting, initializing defaults first if the
// radar is unknown. Boolean parameters accept bool values or numbers
// (non-zero = on); level parameters accept numbers.
func (r *Registry) SetParameter(radarID, name string, value interface{}) error {
	r.mu.Lock()
	p := r.ensureLocked(radarID)

	var err error
	switch name {
	case ParamFrequencyAgility:
		p.FrequencyAgility, err = asBool(value)
	case ParamPulseCompression:
		p.PulseCompression, err = asBool(value)
	case ParamSidelobeBlanking:
		p.SidelobeBlanking, err = asBool(value)
	case ParamSTCLevel:
		p.STCLevel, err = asFloat(value)
	case ParamFTCLevel:
		p.FTCLevel, err = asFloat(value)
	case ParamMTI:
		p.MTIEnabled, err = asBool(value)
	case ParamCFAR:
		p.CFAREnabled, err = asBool(value)
	default:
		err = fmt.Errorf("unknown ECCM parameter %q", name)
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}

	if r.bus != nil {
		r.bus.Publish(events.Event{Name: events.ECCMUpdated, Fields: map[string]interface{}{
			"radarId":   radarID,
			"parameter": name,
			"value":     value,
		}})
	}
	return nil
}

// Gain returns the summed dB bonus of the enabled boolean features. Unknown
// radar identifiers yield zero gain rather than failing.
func (r *Registry) Gain(radarID string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[radarID]
	if !ok {
		return 0
	}

	gain := 0.0
	if p.FrequencyAgility {
		gain += r.gains.FrequencyAgilityDB
	}
	if p.PulseCompression {
		gain += r.gains.PulseCompressionDB
	}
	if p.SidelobeBlanking {
		gain += r.gains.SidelobeBlankingDB
	}
	return gain
}

// Profile returns a copy of a radar's settings. The second return is false
// when the radar has never been configured.
func (r *Registry) Profile(radarID string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.profiles[radarID]; ok {
		return *p, true
	}
	return Profile{}, false
}

// MTIEnabled reports whether a radar has MTI processing switched on.
// Unknown radars default to off.
func (r *Registry) MTIEnabled(radarID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.profiles[radarID]; ok {
		return p.MTIEnabled
	}
	return false
}

func asBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		return x == "true" || x == "1" || x == "on", nil
	default:
		return false, fmt.Errorf("cannot interpret %T as boolean", v)
	}
}

func asFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as number", v)
	}
}
