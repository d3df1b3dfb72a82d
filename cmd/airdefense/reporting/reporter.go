// Package reporting renders the EW event stream and periodic scope
// snapshots to the console, and accumulates the end-of-run summary.
package reporting

import (
	"fmt"
	"sync"

	"github.com/fatih/color"

	"github.com/samsim/ew-simulations/pkg/events"
	"github.com/samsim/ew-simulations/pkg/ew"
	"github.com/samsim/ew-simulations/pkg/logger"
)

var (
	strobeColor  = color.New(color.FgYellow)
	contactColor = color.New(color.FgHiWhite)
	iffColor     = color.New(color.FgMagenta)
)

// Reporter subscribes to the EW event bus and keeps running counters for the
// final engagement summary.
type Reporter struct {
	log logger.Logger

	mu             sync.Mutex
	chaffDeployed  int
	chaffExpired   int
	interrogations int
	eccmChanges    int
	scans          int
}

// NewReporter attaches a reporter to the bus.
func NewReporter(bus *events.Bus) *Reporter {
	r := &Reporter{log: logger.WithPrefix("EW")}

	bus.Subscribe(events.ChaffDeployed, 0, func(ev events.Event) {
		r.count(&r.chaffDeployed)
		r.log.Debugf("chaff cloud %v deployed at %.0f m", ev.Fields["cloudId"], ev.Fields["altitude"])
	})
	bus.Subscribe(events.ChaffExpired, 0, func(ev events.Event) {
		r.count(&r.chaffExpired)
		r.log.Debugf("chaff cloud %v expired", ev.Fields["cloudId"])
	})
	bus.Subscribe(events.IFFResponse, 0, func(ev events.Event) {
		r.count(&r.interrogations)
		r.log.Infof("IFF %v: target %v is %v",
			ev.Fields["mode"], ev.Fields["targetId"], ev.Fields["classification"])
	})
	bus.Subscribe(events.ECCMUpdated, 0, func(ev events.Event) {
		r.count(&r.eccmChanges)
		r.log.Infof("ECCM %v on %v set to %v",
			ev.Fields["parameter"], ev.Fields["radarId"], ev.Fields["value"])
	})
	bus.Subscribe(events.JammingScan, 0, func(ev events.Event) {
		r.count(&r.scans)
	})
	bus.Subscribe(events.RadarRegistered, 0, func(ev events.Event) {
		r.log.Infof("radar %v registered on band %v", ev.Fields["radarId"], ev.Fields["band"])
	})

	return r
}

func (r *Reporter) count(c *int) {
	r.mu.Lock()
	*c++
	r.mu.Unlock()
}

// LogSnapshot renders one radar's scope picture.
func (r *Reporter) LogSnapshot(snap ew.Snapshot) {
	scope := r.log.WithField("radar", snap.RadarID)
	scope.Infof("t=%.1fs scope: %d strobes, %d chaff contacts, %d IFF tracks",
		snap.Time, len(snap.Strobes), len(snap.ChaffContacts), len(snap.IFFResponses))

	for _, s := range snap.Strobes {
		scope.Info(strobeColor.Sprintf("  strobe %s brg %.1f° width %.1f° intensity %.2f (%s)",
			s.SourceID, s.Bearing, s.WidthDeg, s.Intensity, s.Technique))
	}
	for _, c := range snap.ChaffContacts {
		scope.Debug(contactColor.Sprintf("  chaff %d brg %.1f° rng %.0f m rcs %.1f m²",
			c.CloudID, c.Bearing, c.RangeM, c.RCS))
	}
	for id, cls := range snap.IFFResponses {
		scope.Debug(iffColor.Sprintf("  iff %s: %s", id, cls))
	}
}

// Summary prints the end-of-run counters.
func (r *Reporter) Summary() {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.LogSection("Engagement Summary")
	logger.Infof("Jamming scans:      %d", r.scans)
	logger.Infof("Chaff deployed:     %d", r.chaffDeployed)
	logger.Infof("Chaff expired:      %d", r.chaffExpired)
	logger.Infof("IFF interrogations: %d", r.interrogations)
	logger.Infof("ECCM changes:       %d", r.eccmChanges)
}

// Interrogations returns the number of IFF responses seen so far.
func (r *Reporter) Interrogations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interrogations
}

// BurnThroughLine formats a burn-through range for the console.
func BurnThroughLine(radarID, jammerID string, rangeM float64) string {
	if rangeM > 1e7 {
		return fmt.Sprintf("%s vs %s: jammer ineffective, no burn-through limit", radarID, jammerID)
	}
	return fmt.Sprintf("%s vs %s: burn-through at %.1f km", radarID, jammerID, rangeM/1000)
}
