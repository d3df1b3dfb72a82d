package config

import (
	"fmt"
	"time"

	"github.com/samsim/ew-simulations/pkg/ew"
	"github.com/samsim/ew-simulations/pkg/ew/rf"
)

// ScenarioConfig holds the complete air-defense scenario configuration
type ScenarioConfig struct {
	// Basic scenario settings
	Scenario ScenarioSettings `yaml:"scenario"`

	// Radar sites defended by the RED side
	Radars []RadarConfig `yaml:"radars"`

	// BLUE strike package composition and behavior
	Strike StrikeConfig `yaml:"strike"`

	// EW core tuning
	EW ew.Settings `yaml:"ew"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`
}

// ScenarioSettings holds basic scenario settings
type ScenarioSettings struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Duration     time.Duration `yaml:"duration"`
	Seed         int64         `yaml:"seed"`
}

// Position is a scenario-frame coordinate in metres (Y is altitude)
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RadarConfig describes one victim radar site
type RadarConfig struct {
	ID       string   `yaml:"id"`
	Band     string   `yaml:"band"`
	PowerDBW float64  `yaml:"power_dbw"`
	GainDBi  float64  `yaml:"gain_dbi"`
	Position Position `yaml:"position"`
}

// StrikeConfig describes the inbound strike package
type StrikeConfig struct {
	NumStrikers    int           `yaml:"num_strikers"`
	StrikerType    string        `yaml:"striker_type"`
	EscortJammer   bool          `yaml:"escort_jammer"`
	EscortType     string        `yaml:"escort_type"`
	StartRangeM    float64       `yaml:"start_range_m"`
	AltitudeM      float64       `yaml:"altitude_m"`
	IngressSpeedMS float64       `yaml:"ingress_speed_ms"`
	ChaffInterval  time.Duration `yaml:"chaff_interval"`
	IFFInterval    time.Duration `yaml:"iff_interval"`
}

// LoggingConfig defines logging and reporting settings
type LoggingConfig struct {
	ConsoleLevel     string        `yaml:"console_level"` // "debug", "info", "warn", "error"
	ShowSnapshots    bool          `yaml:"show_snapshots"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

// Validate checks if the configuration is valid
func (c *ScenarioConfig) Validate() error {
	if c.Scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	if c.Scenario.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}

	if c.Scenario.Duration <= 0 {
		return fmt.Errorf("scenario duration must be positive")
	}

	if len(c.Radars) == 0 {
		return fmt.Errorf("at least one radar site is required")
	}

	seen := make(map[string]bool, len(c.Radars))
	for _, r := range c.Radars {
		if r.ID == "" {
			return fmt.Errorf("radar id is required")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate radar id %q", r.ID)
		}
		seen[r.ID] = true
		if !validBand(r.Band) {
			return fmt.Errorf("radar %s has invalid band %q", r.ID, r.Band)
		}
	}

	if c.Strike.NumStrikers <= 0 {
		return fmt.Errorf("number of strikers must be positive")
	}

	if c.Strike.IngressSpeedMS <= 0 {
		return fmt.Errorf("ingress speed must be positive")
	}

	if c.Strike.StartRangeM <= 0 {
		return fmt.Errorf("start range must be positive")
	}

	if c.EW.ScanIntervalS <= 0 {
		return fmt.Errorf("scan interval must be positive")
	}

	if c.EW.ScanRangeM <= 0 {
		return fmt.Errorf("scan range must be positive")
	}

	return nil
}

func validBand(band string) bool {
	switch rf.Band(band) {
	case rf.BandC, rf.BandD, rf.BandE, rf.BandF, rf.BandG, rf.BandH, rf.BandI, rf.BandJ:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the configuration
func (c *ScenarioConfig) String() string {
	return fmt.Sprintf(`Scenario Configuration:
  Name: %s
  Description: %s
  Tick Interval: %v
  Duration: %v
  Seed: %d

Radars: %d sites

Strike Package:
  Strikers: %d x %s
  Escort Jammer: %t
  Start Range: %.0f m
  Altitude: %.0f m
  Ingress Speed: %.0f m/s
  Chaff Interval: %v

EW Core:
  Scan Interval: %.1f s
  Scan Range: %.0f m
  Burn-Through Margin: %.1f dB

Logging:
  Console Level: %s
  Show Snapshots: %t`,
		c.Scenario.Name,
		c.Scenario.Description,
		c.Scenario.TickInterval,
		c.Scenario.Duration,
		c.Scenario.Seed,
		len(c.Radars),
		c.Strike.NumStrikers,
		c.Strike.StrikerType,
		c.Strike.EscortJammer,
		c.Strike.StartRangeM,
		c.Strike.AltitudeM,
		c.Strike.IngressSpeedMS,
		c.Strike.ChaffInterval,
		c.EW.ScanIntervalS,
		c.EW.ScanRangeM,
		c.EW.BurnThroughMarginDB,
		c.Logging.ConsoleLevel,
		c.Logging.ShowSnapshots,
	)
}

// GetDefaultConfig returns the reference scenario: a two-site RED IADS
// against a four-ship BLUE strike package with a standoff jammer escort
func GetDefaultConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Scenario: ScenarioSettings{
			Name:         "air-defense-ew",
			Description:  "SAM site EW picture against a jamming strike package",
			TickInterval: 500 * time.Millisecond,
			Duration:     2 * time.Minute,
			Seed:         42,
		},

		Radars: []RadarConfig{
			{
				ID:       "sam-1",
				Band:     "E",
				PowerDBW: 50,
				GainDBi:  35,
				Position: Position{X: 0, Y: 0, Z: 0},
			},
			{
				ID:       "sam-2",
				Band:     "I",
				PowerDBW: 43,
				GainDBi:  32,
				Position: Position{X: 12000, Y: 0, Z: 8000},
			},
		},

		Strike: StrikeConfig{
			NumStrikers:    4,
			StrikerType:    "F-16C",
			EscortJammer:   true,
			EscortType:     "EA-18G",
			StartRangeM:    80000,
			AltitudeM:      6000,
			IngressSpeedMS: 250,
			ChaffInterval:  10 * time.Second,
			IFFInterval:    15 * time.Second,
		},

		EW: ew.DefaultSettings(),

		Logging: LoggingConfig{
			ConsoleLevel:     "info",
			ShowSnapshots:    true,
			SnapshotInterval: 10 * time.Second,
		},
	}
}
