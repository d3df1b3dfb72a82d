// Package scenario drives the air-defense EW engagement: a BLUE strike
// package with jammer support ingresses against a RED IADS while the EW core
// builds each radar's scope picture.
package scenario

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/samsim/ew-simulations/cmd/airdefense/config"
	"github.com/samsim/ew-simulations/cmd/airdefense/reporting"
	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/ew"
	"github.com/samsim/ew-simulations/pkg/ew/rf"
	"github.com/samsim/ew-simulations/pkg/logger"
	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
	"github.com/samsim/ew-simulations/pkg/simulation"
)

// ScenarioName is the registry and simulation.yaml name.
const ScenarioName = "air-defense-ew"

type striker struct {
	handle    sensor.Handle
	velocity  models.Vec3
	lastChaff float64
}

// AirDefense implements the EW engagement scenario.
type AirDefense struct {
	cfg      *config.ScenarioConfig
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates an unconfigured scenario instance.
func New() simulation.Simulation {
	return &AirDefense{stopChan: make(chan struct{})}
}

// Name returns the scenario name
func (a *AirDefense) Name() string {
	return ScenarioName
}

// Description returns the scenario description
func (a *AirDefense) Description() string {
	return "SAM site EW picture against a jamming strike package with chaff and IFF"
}

// Configure loads the scenario configuration and applies parameter overrides
func (a *AirDefense) Configure(params map[string]interface{}) error {
	cfgPath, _ := params["config_file"].(string)
	cfg, err := config.LoadConfigOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if v, ok := params["duration"].(time.Duration); ok && v > 0 {
		cfg.Scenario.Duration = v
	}
	if v, ok := params["tick_interval"].(time.Duration); ok && v > 0 {
		cfg.Scenario.TickInterval = v
	}
	if v, ok := params["num_strikers"].(int); ok && v > 0 {
		cfg.Strike.NumStrikers = v
	}
	if v, ok := params["seed"].(int); ok {
		cfg.Scenario.Seed = int64(v)
	}
	if v, ok := params["show_snapshots"].(bool); ok {
		cfg.Logging.ShowSnapshots = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.ConsoleLevel))

	a.cfg = cfg
	return nil
}

// Run executes the scenario
func (a *AirDefense) Run(ctx context.Context) error {
	cfg := a.cfg
	if cfg == nil {
		return fmt.Errorf("scenario not configured")
	}

	clock := sensor.NewSimClock(0)
	world := sensor.NewWorld()
	bus := events.NewBus()
	reporter := reporting.NewReporter(bus)
	rng := rand.New(rand.NewSource(cfg.Scenario.Seed))

	core := ew.New(cfg.EW, clock, world, bus, rng)
	for _, rc := range cfg.Radars {
		core.RegisterRadar(ew.RadarSite{
			ID:       rc.ID,
			Position: models.Vec3{X: rc.Position.X, Y: rc.Position.Y, Z: rc.Position.Z},
			Band:     rf.Band(rc.Band),
			PowerDBW: rc.PowerDBW,
			GainDBi:  rc.GainDBi,
		})
	}

	primary := cfg.Radars[0]
	primaryPos := models.Vec3{X: primary.Position.X, Y: primary.Position.Y, Z: primary.Position.Z}

	strikers := a.launchStrikePackage(world, primaryPos)
	logger.Infof("Strike package inbound: %d x %s from %.0f km",
		cfg.Strike.NumStrikers, cfg.Strike.StrikerType, cfg.Strike.StartRangeM/1000)

	a.previewBurnThrough(core)

	ticker := time.NewTicker(cfg.Scenario.TickInterval)
	defer ticker.Stop()
	defer reporter.Summary()

	timeout := time.After(cfg.Scenario.Duration)
	dt := cfg.Scenario.TickInterval.Seconds()

	var lastIFF, lastSnap float64
	eccmEngaged := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.stopChan:
			logger.Info("Scenario stopped by user")
			return nil
		case <-timeout:
			logger.Infof("Scenario completed after %s", cfg.Scenario.Duration)
			return nil
		case <-ticker.C:
			world.Step(dt)
			clock.Advance(dt)
			core.Tick(dt)
			now := clock.Now()

			a.employChaff(core, world, strikers, primaryPos, now)

			if now-lastIFF >= cfg.Strike.IFFInterval.Seconds() {
				lastIFF = now
				a.interrogateStrikers(core, world, strikers, primary.ID)
			}

			// Once jamming paints on the primary scope, the crew brings up
			// frequency agility and MTI.
			if !eccmEngaged && len(core.Detector().Strobes(primary.ID)) > 0 {
				eccmEngaged = true
				core.Dispatch(models.Command{
					Type: models.CommandSetECCM, RadarID: primary.ID,
					Parameter: "frequency_agility", Value: true,
				})
				core.Dispatch(models.Command{
					Type: models.CommandSetECCM, RadarID: primary.ID,
					Parameter: "mti", Value: true,
				})
				a.previewBurnThrough(core)
			}

			if cfg.Logging.ShowSnapshots && now-lastSnap >= cfg.Logging.SnapshotInterval.Seconds() {
				lastSnap = now
				for _, site := range core.Radars() {
					if snap, err := core.ExportState(site.ID); err == nil {
						reporter.LogSnapshot(snap)
					}
				}
			}
		}
	}
}

// Stop gracefully shuts down the scenario
func (a *AirDefense) Stop() error {
	a.stopOnce.Do(func() { close(a.stopChan) })
	return nil
}

// launchStrikePackage spawns the BLUE package on an ingress heading toward
// the primary radar. The escort jammer trails the strikers at lower speed.
func (a *AirDefense) launchStrikePackage(world *sensor.World, target models.Vec3) []*striker {
	cfg := a.cfg.Strike

	strikers := make([]*striker, 0, cfg.NumStrikers+1)
	for i := 0; i < cfg.NumStrikers; i++ {
		start := models.Vec3{
			X: target.X + cfg.StartRangeM,
			Y: cfg.AltitudeM,
			Z: target.Z + float64(i-cfg.NumStrikers/2)*600,
		}
		vel := ingressVelocity(start, target, cfg.IngressSpeedMS)
		h := world.AddPlatform(sensor.Platform{
			Name:      fmt.Sprintf("%s %d", cfg.StrikerType, i+1),
			TypeName:  cfg.StrikerType,
			Category:  models.CategoryAir,
			Coalition: models.CoalitionBlue,
			Position:  start,
			Velocity:  vel,
		})
		strikers = append(strikers, &striker{handle: h, velocity: vel})
	}

	if cfg.EscortJammer {
		start := models.Vec3{
			X: target.X + cfg.StartRangeM + 15000,
			Y: cfg.AltitudeM + 2000,
			Z: target.Z - 5000,
		}
		world.AddPlatform(sensor.Platform{
			Name:      cfg.EscortType + " escort",
			TypeName:  cfg.EscortType,
			Category:  models.CategoryAir,
			Coalition: models.CoalitionBlue,
			Position:  start,
			Velocity:  ingressVelocity(start, target, cfg.IngressSpeedMS*0.4),
		})
	}

	return strikers
}

// employChaff drops a bundle from every striker inside the threat envelope
// on the configured interval.
func (a *AirDefense) employChaff(core *ew.Core, world *sensor.World, strikers []*striker, radarPos models.Vec3, now float64) {
	interval := a.cfg.Strike.ChaffInterval.Seconds()

	for _, st := range strikers {
		pos, ok := world.PlatformPosition(st.handle)
		if !ok {
			continue
		}
		if models.Distance(radarPos, pos) > a.cfg.EW.ScanRangeM {
			continue
		}
		if now-st.lastChaff < interval {
			continue
		}
		st.lastChaff = now

		vel := st.velocity
		res := core.Dispatch(models.Command{
			Type:     models.CommandDropChaff,
			Position: &pos,
			Velocity: &vel,
		})
		if !res.Success {
			logger.Warnf("chaff deployment failed: %s", res.Message)
		}
	}
}

// interrogateStrikers has the primary radar challenge every striker track.
func (a *AirDefense) interrogateStrikers(core *ew.Core, world *sensor.World, strikers []*striker, radarID string) {
	for _, st := range strikers {
		pos, ok := world.PlatformPosition(st.handle)
		if !ok {
			continue
		}
		id, ok := world.PlatformID(st.handle)
		if !ok {
			continue
		}
		core.Dispatch(models.Command{
			Type:      models.CommandIFFInterrogate,
			RadarID:   radarID,
			TargetID:  id,
			Mode:      "MODE_4",
			TargetPos: &pos,
		})
	}
}

// ingressVelocity points a level-flight velocity vector from start toward
// the target at the given ground speed.
func ingressVelocity(from, to models.Vec3, speed float64) models.Vec3 {
	dx := to.X - from.X
	dz := to.Z - from.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return models.Vec3{}
	}
	return models.Vec3{X: dx / dist * speed, Z: dz / dist * speed}
}

// previewBurnThrough logs the burn-through range of every radar against the
// escort's jammer at a fighter-sized RCS.
func (a *AirDefense) previewBurnThrough(core *ew.Core) {
	if !a.cfg.Strike.EscortJammer {
		return
	}
	profileID, ok := core.Catalog().JammerForPlatform(a.cfg.Strike.EscortType)
	if !ok {
		return
	}

	const fighterRCS = 5.0
	for _, site := range core.Radars() {
		rangeM, err := core.BurnThroughRange(site.ID, profileID, fighterRCS)
		if err != nil {
			continue
		}
		logger.Info(reporting.BurnThroughLine(site.ID, profileID, rangeM))
	}
}

// init registers the scenario
func init() {
	err := simulation.DefaultRegistry.Register(ScenarioName, New)
	if err != nil {
		logger.Errorf("Failed to register scenario: %v", err)
	}
}
