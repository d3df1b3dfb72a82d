// Package rf holds the stateless power-budget math shared by the jamming
// and burn-through calculations. Everything works in decibels at the
// interface and converts to linear terms internally.
package rf

import "math"

// FloorDB is the sentinel returned for empty or invalid power ratios.
// Keeping a hard floor means downstream consumers never see -Inf or NaN.
const FloorDB = -100.0

// fourPi is 4π, the spherical spreading constant.
var fourPi = 4.0 * math.Pi

// Band is a NATO frequency band designator (C through J for the radars
// modeled here).
type Band string

const (
	BandC Band = "C"
	BandD Band = "D"
	BandE Band = "E"
	BandF Band = "F"
	BandG Band = "G"
	BandH Band = "H"
	BandI Band = "I"
	BandJ Band = "J"
)

// Jammer carries the emitter terms of the jamming power budget.
type Jammer struct {
	PowerDBW float64 // radiated power, dB-referenced to 1 W
	GainDBi  float64 // antenna gain toward the victim radar
	Bands    []Band  // bands the jamming technique is effective against
}

// Radar carries the victim radar terms of the power budget.
type Radar struct {
	PowerDBW float64 // transmit power
	GainDBi  float64 // antenna gain (applied twice for the two-way path)
	Band     Band    // operating band
}

// Effective reports whether the jammer's technique covers the radar band.
// Membership is an exact match against the profile's band set.
func (j Jammer) Effective(band Band) bool {
	for _, b := range j.Bands {
		if b == band {
			return true
		}
	}
	return false
}

// LinearFromDB converts a decibel value to a linear power ratio.
func LinearFromDB(db float64) float64 {
	return math.Pow(10.0, db/10.0)
}

// DBFromLinear converts a linear power ratio to decibels. Zero or negative
// input returns FloorDB rather than a log-domain error.
func DBFromLinear(x float64) float64 {
	if x <= 0 {
		return FloorDB
	}
	return 10.0 * math.Log10(x)
}

// JamToSignalDB returns the jamming-to-signal ratio in dB at the radar
// receiver: the one-way jammer budget Pj*Gj/(4πR²) over the two-way radar
// return Pt*Gt²*σ/((4π)³R⁴). A jammer that is not effective against the
// radar's band reports FloorDB regardless of the other inputs.
func JamToSignalDB(j Jammer, r Radar, rcsM2, rangeM float64) float64 {
	if !j.Effective(r.Band) {
		return FloorDB
	}
	if rangeM <= 0 || rcsM2 <= 0 {
		return FloorDB
	}

	jam := LinearFromDB(j.PowerDBW+j.GainDBi) / (fourPi * rangeM * rangeM)
	sig := LinearFromDB(r.PowerDBW+2.0*r.GainDBi) * rcsM2 /
		(math.Pow(fourPi, 3) * math.Pow(rangeM, 4))
	if sig <= 0 {
		return FloorDB
	}
	return DBFromLinear(jam / sig)
}

// BurnThroughRangeM solves for the range at which the radar return meets the
// required signal-to-jam margin. ECCM gain relaxes the margin. Returns +Inf
// when the jammer is ineffective against the band (the radar sees the target
// at any range).
func BurnThroughRangeM(j Jammer, r Radar, rcsM2, requiredMarginDB, eccmGainDB float64) float64 {
	if !j.Effective(r.Band) {
		return math.Inf(1)
	}
	if rcsM2 <= 0 {
		return 0
	}

	requiredRatio := LinearFromDB(requiredMarginDB - eccmGainDB)
	num := LinearFromDB(r.PowerDBW+2.0*r.GainDBi) * rcsM2
	den := math.Pow(fourPi, 3) * LinearFromDB(j.PowerDBW+j.GainDBi) * requiredRatio
	if den <= 0 {
		return math.Inf(1)
	}
	return math.Pow(num/den, 0.25)
}
