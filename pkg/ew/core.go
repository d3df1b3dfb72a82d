// Package ew assembles the electronic-warfare subsystems behind a single
// facade: radar registration, the tick loop, command dispatch and state
// export for scope consumers.
package ew

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/ew/catalog"
	"github.com/samsim/ew-simulations/pkg/ew/chaff"
	"github.com/samsim/ew-simulations/pkg/ew/eccm"
	"github.com/samsim/ew-simulations/pkg/ew/iff"
	"github.com/samsim/ew-simulations/pkg/ew/jamming"
	"github.com/samsim/ew-simulations/pkg/ew/rf"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

// RadarSite describes one registered victim radar.
type RadarSite struct {
	ID       string      `yaml:"id"`
	Position models.Vec3 `yaml:"-"`
	Band     rf.Band     `yaml:"band"`
	PowerDBW float64     `yaml:"power_dbw"`
	GainDBi  float64     `yaml:"gain_dbi"`
}

// Settings is the aggregate tuning for the core and its subsystems.
type Settings struct {
	ScanIntervalS       float64      `yaml:"scan_interval_s"`
	ScanRangeM          float64      `yaml:"scan_range_m"`
	BurnThroughMarginDB float64      `yaml:"burn_through_margin_db"`
	Chaff               chaff.Config `yaml:"chaff"`
	ECCM                eccm.Gains   `yaml:"eccm"`
	IFF                 iff.Config   `yaml:"iff"`
}

// DefaultSettings returns the reference tuning.
func DefaultSettings() Settings {
	return Settings{
		ScanIntervalS:       2,
		ScanRangeM:          60000,
		BurnThroughMarginDB: 6,
		Chaff:               chaff.DefaultConfig(),
		ECCM:                eccm.DefaultGains(),
		IFF:                 iff.DefaultConfig(),
	}
}

// Snapshot is a deep-copied view of everything one radar's scope needs.
type Snapshot struct {
	RadarID       string                        `json:"radarId"`
	Time          float64                       `json:"time"`
	Strobes       []jamming.Strobe              `json:"strobes"`
	ChaffContacts []chaff.Contact               `json:"chaffContacts"`
	IFFResponses  map[string]iff.Classification `json:"iffResponses"`
	ECCM          eccm.Profile                  `json:"eccm"`
}

type radarState struct {
	site      RadarSite
	sinceScan float64
}

// Core owns the EW subsystems and the radar-site registry. All host
// interaction goes through RegisterRadar, Tick, Dispatch and ExportState.
type Core struct {
	settings Settings
	clock    sensor.Clock
	provider sensor.Provider
	bus      *events.Bus

	catalog  *catalog.Catalog
	detector *jamming.Detector
	chaff    *chaff.Simulator
	eccm     *eccm.Registry
	iff      *iff.Subsystem

	mu     sync.RWMutex
	radars map[string]*radarState
}

// New creates a core wired to the host's clock and sensor provider. The bus
// may be nil; a nil rng falls back to a time-seeded source.
func New(settings Settings, clock sensor.Clock, provider sensor.Provider, bus *events.Bus, rng *rand.Rand) *Core {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cat := catalog.NewBuiltin()
	return &Core{
		settings: settings,
		clock:    clock,
		provider: provider,
		bus:      bus,
		catalog:  cat,
		detector: jamming.NewDetector(provider, cat, rng),
		chaff:    chaff.NewSimulator(settings.Chaff, clock, bus),
		eccm:     eccm.NewRegistry(settings.ECCM, bus),
		iff:      iff.NewSubsystem(settings.IFF, clock, provider, bus),
	}
}

// RegisterRadar adds a radar site, initializes its ECCM profile and arms its
// scan timer so the first Tick scans immediately. Re-registering an ID
// updates the site data without resetting ECCM state.
func (c *Core) RegisterRadar(site RadarSite) {
	c.mu.Lock()
	if c.radars == nil {
		c.radars = make(map[string]*radarState)
	}
	if st, ok := c.radars[site.ID]; ok {
		st.site = site
	} else {
		c.radars[site.ID] = &radarState{site: site, sinceScan: c.settings.ScanIntervalS}
	}
	c.mu.Unlock()

	c.eccm.Ensure(site.ID)

	if c.bus != nil {
		c.bus.Publish(events.Event{Name: events.RadarRegistered, Fields: map[string]interface{}{
			"radarId": site.ID,
			"band":    string(site.Band),
		}})
	}
}

// Radar returns a copy of a registered site.
func (c *Core) Radar(radarID string) (RadarSite, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if st, ok := c.radars[radarID]; ok {
		return st.site, true
	}
	return RadarSite{}, false
}

// Radars returns copies of every registered site.
func (c *Core) Radars() []RadarSite {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]RadarSite, 0, len(c.radars))
	for _, st := range c.radars {
		out = append(out, st.site)
	}
	return out
}

// Tick advances the core by dt seconds. Chaff physics runs every tick;
// jamming scans run per radar on the slower configured cadence.
func (c *Core) Tick(dt float64) {
	c.chaff.Update(dt)

	type due struct {
		id   string
		pos  models.Vec3
		band rf.Band
	}

	c.mu.Lock()
	var scans []due
	for id, st := range c.radars {
		st.sinceScan += dt
		if st.sinceScan >= c.settings.ScanIntervalS {
			st.sinceScan = 0
			scans = append(scans, due{id: id, pos: st.site.Position, band: st.site.Band})
		}
	}
	c.mu.Unlock()

	for _, s := range scans {
		c.detector.Scan(s.id, s.pos, s.band, c.settings.ScanRangeM)
		if c.bus != nil {
			c.bus.Publish(events.Event{Name: events.JammingScan, Fields: map[string]interface{}{
				"radarId": s.id,
			}})
		}
	}
}

// Dispatch executes one tagged command and returns the uniform result
// record. Unknown command tags fail rather than being ignored.
func (c *Core) Dispatch(cmd models.Command) models.CommandResult {
	switch cmd.Type {
	case models.CommandSetECCM:
		return c.dispatchSetECCM(cmd)
	case models.CommandIFFInterrogate:
		return c.dispatchInterrogate(cmd)
	case models.CommandDropChaff:
		return c.dispatchDropChaff(cmd)
	default:
		return models.Failure("unknown command")
	}
}

func (c *Core) dispatchSetECCM(cmd models.Command) models.CommandResult {
	if cmd.RadarID == "" {
		return models.Failure("radarId is required")
	}
	if cmd.Parameter == "" {
		return models.Failure("parameter is required")
	}
	if err := c.eccm.SetParameter(cmd.RadarID, cmd.Parameter, cmd.Value); err != nil {
		return models.Failure(err.Error())
	}
	return models.Ok(fmt.Sprintf("%s updated on %s", cmd.Parameter, cmd.RadarID))
}

func (c *Core) dispatchInterrogate(cmd models.Command) models.CommandResult {
	if cmd.TargetID == "" {
		return models.Failure("targetId is required")
	}
	if cmd.TargetPos == nil {
		return models.Failure("targetPos is required")
	}

	radarPos := models.Vec3{}
	switch {
	case cmd.RadarPos != nil:
		radarPos = *cmd.RadarPos
	default:
		site, ok := c.Radar(cmd.RadarID)
		if !ok {
			return models.Failure(fmt.Sprintf("unknown radar %q", cmd.RadarID))
		}
		radarPos = site.Position
	}

	// Out of range is a valid outcome for the interrogator, not a command
	// error: the result is a NONE classification.
	cls := c.iff.Interrogate(cmd.RadarID, cmd.TargetID, *cmd.TargetPos, radarPos, iff.Mode(cmd.Mode))
	res := models.Ok("interrogation complete")
	if models.Distance(radarPos, *cmd.TargetPos) > c.settings.IFF.MaxRangeM {
		res.Message = "target out of interrogation range"
	}
	res.Extra = map[string]interface{}{"classification": string(cls)}
	return res
}

func (c *Core) dispatchDropChaff(cmd models.Command) models.CommandResult {
	if cmd.Position == nil {
		return models.Failure("position is required")
	}

	vel := models.Vec3{}
	if cmd.Velocity != nil {
		vel = *cmd.Velocity
	}
	rcs := 0.0
	if cmd.RCS != nil {
		rcs = *cmd.RCS
	}

	id := c.chaff.Deploy(*cmd.Position, vel, rcs)
	res := models.Ok("chaff deployed")
	res.Extra = map[string]interface{}{"cloudId": id}
	return res
}

// ExportState assembles the scope snapshot for one radar: current strobes,
// the chaff contacts its processing would paint, live IFF responses and the
// ECCM profile. Everything returned is a copy.
func (c *Core) ExportState(radarID string) (Snapshot, error) {
	site, ok := c.Radar(radarID)
	if !ok {
		return Snapshot{}, fmt.Errorf("unknown radar %q", radarID)
	}

	profile, _ := c.eccm.Profile(radarID)
	return Snapshot{
		RadarID:       radarID,
		Time:          c.clock.Now(),
		Strobes:       c.detector.Strobes(radarID),
		ChaffContacts: c.chaff.Contacts(site.Position, c.settings.ScanRangeM, profile.MTIEnabled),
		IFFResponses:  c.iff.Responses(),
		ECCM:          profile,
	}, nil
}

// BurnThroughRange computes the burn-through range of a registered radar
// against a cataloged jammer, with the radar's current ECCM gain applied.
func (c *Core) BurnThroughRange(radarID, jammerProfileID string, rcsM2 float64) (float64, error) {
	site, ok := c.Radar(radarID)
	if !ok {
		return 0, fmt.Errorf("unknown radar %q", radarID)
	}

	profile := c.catalog.Profile(jammerProfileID)
	victim := rf.Radar{PowerDBW: site.PowerDBW, GainDBi: site.GainDBi, Band: site.Band}
	return rf.BurnThroughRangeM(profile.Emitter(), victim, rcsM2,
		c.settings.BurnThroughMarginDB, c.eccm.Gain(radarID)), nil
}

// JamToSignal computes the current J/S in dB seen by a registered radar from
// a cataloged jammer at the given range.
func (c *Core) JamToSignal(radarID, jammerProfileID string, rcsM2, rangeM float64) (float64, error) {
	site, ok := c.Radar(radarID)
	if !ok {
		return 0, fmt.Errorf("unknown radar %q", radarID)
	}

	profile := c.catalog.Profile(jammerProfileID)
	victim := rf.Radar{PowerDBW: site.PowerDBW, GainDBi: site.GainDBi, Band: site.Band}
	return rf.JamToSignalDB(profile.Emitter(), victim, rcsM2, rangeM), nil
}

// Catalog exposes the jammer catalog for scenario and display code.
func (c *Core) Catalog() *catalog.Catalog { return c.catalog }

// Chaff exposes the chaff simulator.
func (c *Core) Chaff() *chaff.Simulator { return c.chaff }

// ECCM exposes the per-radar ECCM registry.
func (c *Core) ECCM() *eccm.Registry { return c.eccm }

// IFF exposes the interrogation subsystem.
func (c *Core) IFF() *iff.Subsystem { return c.iff }

// Detector exposes the jamming detector.
func (c *Core) Detector() *jamming.Detector { return c.detector }
