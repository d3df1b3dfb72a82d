package ew

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samsim/ew-simulations/pkg/models"
	"github.com/samsim/ew-simulations/pkg/sensor"
)

func newTestCore() (*Core, *sensor.SimClock, *sensor.World) {
	clock := sensor.NewSimClock(0)
	world := sensor.NewWorld()
	core := New(DefaultSettings(), clock, world, nil, rand.New(rand.NewSource(1)))
	core.RegisterRadar(RadarSite{
		ID:       "sam-1",
		Position: models.Vec3{},
		Band:     "E",
		PowerDBW: 50,
		GainDBi:  35,
	})
	return core, clock, world
}

func TestTickScanCadence(t *testing.T) {
	core, _, world := newTestCore()
	h := world.AddPlatform(sensor.Platform{
		TypeName:  "EA-18G",
		Category:  models.CategoryAir,
		Coalition: models.CoalitionBlue,
		Position:  models.Vec3{X: 30000, Y: 6000},
	})

	// The first tick after registration scans immediately.
	core.Tick(0.1)
	if got := len(core.Detector().Strobes("sam-1")); got != 1 {
		t.Fatalf("Expected 1 strobe after first tick, got %d", got)
	}

	// Between scans the snapshot holds even though the source is gone.
	world.RemovePlatform(h)
	core.Tick(1)
	if got := len(core.Detector().Strobes("sam-1")); got != 1 {
		t.Errorf("Strobes should persist between scans, got %d", got)
	}

	// The next scheduled scan clears it.
	core.Tick(1)
	if got := len(core.Detector().Strobes("sam-1")); got != 0 {
		t.Errorf("Expected empty snapshot after rescan, got %d strobes", got)
	}
}

func TestDispatchSetECCM(t *testing.T) {
	core, _, _ := newTestCore()

	res := core.Dispatch(models.Command{
		Type:      models.CommandSetECCM,
		RadarID:   "sam-1",
		Parameter: "frequency_agility",
		Value:     true,
	})
	if !res.Success {
		t.Fatalf("SET_ECCM failed: %s", res.Message)
	}
	if got := core.ECCM().Gain("sam-1"); got != 8 {
		t.Errorf("Expected 8 dB gain after enabling frequency agility, got %v", got)
	}

	res = core.Dispatch(models.Command{
		Type:      models.CommandSetECCM,
		RadarID:   "sam-1",
		Parameter: "afterburner",
		Value:     true,
	})
	if res.Success {
		t.Errorf("Unknown parameter should fail")
	}

	res = core.Dispatch(models.Command{Type: models.CommandSetECCM, Parameter: "mti", Value: true})
	if res.Success {
		t.Errorf("Missing radarId should fail")
	}
}

func TestDispatchInterrogate(t *testing.T) {
	core, clock, world := newTestCore()
	h := world.AddPlatform(sensor.Platform{
		TypeName:  "F-16C",
		Category:  models.CategoryAir,
		Coalition: models.CoalitionBlue,
		Position:  models.Vec3{X: 20000, Y: 5000},
	})
	targetID, _ := world.PlatformID(h)

	res := core.Dispatch(models.Command{
		Type:      models.CommandIFFInterrogate,
		RadarID:   "sam-1",
		TargetID:  targetID,
		Mode:      "MODE_4",
		TargetPos: &models.Vec3{X: 20000, Y: 5000},
	})
	if !res.Success {
		t.Fatalf("IFF_INTERROGATE failed: %s", res.Message)
	}
	if res.Extra["classification"] != "PENDING" {
		t.Errorf("Fresh interrogation should report PENDING, got %v", res.Extra["classification"])
	}

	clock.Advance(1)
	if got := core.IFF().Response(targetID); got != "HOSTILE" {
		t.Errorf("BLUE target should read HOSTILE after the delay, got %v", got)
	}
}

func TestDispatchInterrogateOutOfRange(t *testing.T) {
	core, _, _ := newTestCore()

	res := core.Dispatch(models.Command{
		Type:      models.CommandIFFInterrogate,
		RadarID:   "sam-1",
		TargetID:  "far-track",
		Mode:      "MODE_4",
		TargetPos: &models.Vec3{X: 500000, Y: 8000},
	})
	if !res.Success {
		t.Fatalf("Out-of-range interrogation is a valid outcome, got failure: %s", res.Message)
	}
	if res.Extra["classification"] != "NONE" {
		t.Errorf("Expected NONE classification, got %v", res.Extra["classification"])
	}
	if res.Message != "target out of interrogation range" {
		t.Errorf("Expected the out-of-range sentinel message, got %q", res.Message)
	}
}

func TestDispatchInterrogateUnknownRadar(t *testing.T) {
	core, _, _ := newTestCore()

	res := core.Dispatch(models.Command{
		Type:      models.CommandIFFInterrogate,
		RadarID:   "sam-99",
		TargetID:  "track-1",
		TargetPos: &models.Vec3{X: 1000},
	})
	if res.Success {
		t.Errorf("Unknown radar without an explicit radarPos should fail")
	}
}

func TestDispatchDropChaff(t *testing.T) {
	core, _, _ := newTestCore()

	res := core.Dispatch(models.Command{Type: models.CommandDropChaff})
	if res.Success {
		t.Fatalf("DROP_CHAFF without a position should fail")
	}

	rcs := 80.0
	res = core.Dispatch(models.Command{
		Type:     models.CommandDropChaff,
		Position: &models.Vec3{X: 10000, Y: 2000},
		Velocity: &models.Vec3{X: 200},
		RCS:      &rcs,
	})
	if !res.Success {
		t.Fatalf("DROP_CHAFF failed: %s", res.Message)
	}
	if res.Extra["cloudId"] != 1 {
		t.Errorf("Expected cloudId 1, got %v", res.Extra["cloudId"])
	}
	if got := core.Chaff().Count(); got != 1 {
		t.Errorf("Expected 1 live cloud, got %d", got)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	core, _, _ := newTestCore()

	res := core.Dispatch(models.Command{Type: "SELF_DESTRUCT"})
	if res.Success {
		t.Fatalf("Unknown command should fail")
	}
	if res.Message != "unknown command" {
		t.Errorf("Expected %q, got %q", "unknown command", res.Message)
	}
}

func TestExportState(t *testing.T) {
	core, clock, world := newTestCore()
	world.AddPlatform(sensor.Platform{
		TypeName:  "EA-18G",
		Category:  models.CategoryAir,
		Coalition: models.CoalitionBlue,
		Position:  models.Vec3{X: 30000, Y: 6000},
	})
	core.Dispatch(models.Command{
		Type:     models.CommandDropChaff,
		Position: &models.Vec3{X: 10000, Y: 2000},
	})

	clock.Advance(0.1)
	core.Tick(0.1)

	snap, err := core.ExportState("sam-1")
	if err != nil {
		t.Fatalf("ExportState failed: %v", err)
	}
	if snap.RadarID != "sam-1" {
		t.Errorf("Expected radarId sam-1, got %s", snap.RadarID)
	}
	if snap.Time != 0.1 {
		t.Errorf("Expected snapshot time 0.1, got %v", snap.Time)
	}
	if len(snap.Strobes) != 1 {
		t.Errorf("Expected 1 strobe, got %d", len(snap.Strobes))
	}
	if len(snap.ChaffContacts) != 1 {
		t.Errorf("Expected 1 chaff contact, got %d", len(snap.ChaffContacts))
	}
	if snap.ECCM.STCLevel != 0.5 {
		t.Errorf("Expected default STC level in snapshot, got %v", snap.ECCM.STCLevel)
	}

	if _, err := core.ExportState("sam-99"); err == nil {
		t.Errorf("Unknown radar should error")
	}
}

func TestExportStateAppliesMTISuppression(t *testing.T) {
	core, _, _ := newTestCore()

	// 8 m² suppressed by the 0.1 MTI factor drops below the 1 m² floor.
	rcs := 8.0
	core.Dispatch(models.Command{
		Type:     models.CommandDropChaff,
		Position: &models.Vec3{X: 10000, Y: 2000},
		RCS:      &rcs,
	})
	core.Dispatch(models.Command{
		Type:      models.CommandSetECCM,
		RadarID:   "sam-1",
		Parameter: "mti",
		Value:     true,
	})

	snap, err := core.ExportState("sam-1")
	if err != nil {
		t.Fatalf("ExportState failed: %v", err)
	}
	if len(snap.ChaffContacts) != 0 {
		t.Errorf("MTI should suppress the weak cloud, got %d contacts", len(snap.ChaffContacts))
	}
}

func TestBurnThroughRangeUsesECCMGain(t *testing.T) {
	core, _, _ := newTestCore()

	base, err := core.BurnThroughRange("sam-1", "alq99", 5)
	if err != nil {
		t.Fatalf("BurnThroughRange failed: %v", err)
	}

	core.Dispatch(models.Command{Type: models.CommandSetECCM, RadarID: "sam-1", Parameter: "frequency_agility", Value: true})
	core.Dispatch(models.Command{Type: models.CommandSetECCM, RadarID: "sam-1", Parameter: "pulse_compression", Value: true})

	boosted, err := core.BurnThroughRange("sam-1", "alq99", 5)
	if err != nil {
		t.Fatalf("BurnThroughRange failed: %v", err)
	}

	// 18 dB of gain extends burn-through by 10^(18/40).
	want := base * math.Pow(10, 0.45)
	if math.Abs(boosted-want)/want > 1e-9 {
		t.Errorf("Expected boosted range %v, got %v", want, boosted)
	}

	if _, err := core.BurnThroughRange("sam-99", "alq99", 5); err == nil {
		t.Errorf("Unknown radar should error")
	}
}

func TestBurnThroughRangeOffBandIsInfinite(t *testing.T) {
	core, _, _ := newTestCore()
	core.RegisterRadar(RadarSite{ID: "sam-2", Band: "J", PowerDBW: 50, GainDBi: 35})

	// The ALQ-99 profile does not cover band J.
	got, err := core.BurnThroughRange("sam-2", "alq99", 5)
	if err != nil {
		t.Fatalf("BurnThroughRange failed: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("Off-band jammer should yield infinite burn-through range, got %v", got)
	}
}

func TestJamToSignal(t *testing.T) {
	core, _, _ := newTestCore()

	near, err := core.JamToSignal("sam-1", "alq99", 5, 20000)
	if err != nil {
		t.Fatalf("JamToSignal failed: %v", err)
	}
	far, err := core.JamToSignal("sam-1", "alq99", 5, 60000)
	if err != nil {
		t.Fatalf("JamToSignal failed: %v", err)
	}
	if far <= near {
		t.Errorf("J/S must grow with range: near %v, far %v", near, far)
	}

	if _, err := core.JamToSignal("sam-99", "alq99", 5, 20000); err == nil {
		t.Errorf("Unknown radar should error")
	}
}
