package wqi

import "math"

// DO saturation constant at the 20°C reference temperature, per the
// CPCB WQI methodology used in the Maharashtra Water Quality Status
// Report. When a sample temperature is known the constant is adjusted
// linearly and clamped to [4.0, 9.0].
const (
	doSaturationConstant = 6.5
	doReferenceTemp      = 20.0
	doTempCoefficient    = 0.015
	doSaturationMin      = 4.0
	doSaturationMax      = 9.0
)

// segment is one breakpoint row of a piecewise-linear transfer function.
// Bounds apply to the dispatch value (percent saturation, raw count,
// pH, mg/l); loIncl/hiIncl pin which segment owns each published
// breakpoint. Tables are evaluated top-down, first match wins.
type segment struct {
	lo, hi           float64
	loIncl, hiIncl   bool
	slope, intercept float64
}

func (s segment) contains(v float64) bool {
	if v < s.lo || (v == s.lo && !s.loIncl) {
		return false
	}
	if v > s.hi || (v == s.hi && !s.hiIncl) {
		return false
	}
	return true
}

// evalSegments returns slope*v + intercept for the first segment whose
// range contains v, or false if v falls outside every segment.
func evalSegments(v float64, table []segment) (float64, bool) {
	for _, s := range table {
		if s.contains(v) {
			return s.intercept + s.slope*v, true
		}
	}
	return 0, false
}

// Breakpoint tables from the CPCB/NSF regression segments. The DO curve
// is intentionally discontinuous at 40% saturation and the pH curve at
// 7.3; both gaps are in the published standard and must not be smoothed.
var (
	// Dispatch value: percent saturation.
	doSegments = []segment{
		{lo: 0, hi: 40, loIncl: true, hiIncl: true, slope: 0.66, intercept: 0.18},
		{lo: 40, hi: 100, loIncl: false, hiIncl: true, slope: 1.17, intercept: -13.55},
		{lo: 100, hi: 140, loIncl: false, hiIncl: true, slope: -0.62, intercept: 163.34},
	}

	// Dispatch value: raw MPN/100ml count; the linear form applies to
	// log10(count).
	fcSegments = []segment{
		{lo: 1, hi: 1000, loIncl: true, hiIncl: true, slope: -26.6, intercept: 97.2},
		{lo: 1000, hi: 100000, loIncl: false, hiIncl: true, slope: -7.75, intercept: 42.33},
	}

	phSegments = []segment{
		{lo: 2, hi: 5, loIncl: true, hiIncl: false, slope: 7.35, intercept: 16.1},
		{lo: 5, hi: 7.3, loIncl: true, hiIncl: false, slope: 33.5, intercept: -142.67},
		{lo: 7.3, hi: 10, loIncl: true, hiIncl: true, slope: -29.85, intercept: 316.96},
		{lo: 10, hi: 12, loIncl: false, hiIncl: true, slope: -8.0, intercept: 96.17},
	}

	bodSegments = []segment{
		{lo: 0, hi: 10, loIncl: true, hiIncl: true, slope: -7.0, intercept: 96.67},
		{lo: 10, hi: 30, loIncl: false, hiIncl: true, slope: -1.23, intercept: 38.9},
	}
)

// clampScore bounds a sub-index or aggregate score to [0, 100].
func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// SaturationConstant returns the DO saturation constant for a sample,
// adjusted for temperature when one was measured.
func SaturationConstant(temperature *float64) float64 {
	if temperature == nil {
		return doSaturationConstant
	}
	adjusted := doSaturationConstant * (1 - (*temperature-doReferenceTemp)*doTempCoefficient)
	return math.Max(doSaturationMin, math.Min(doSaturationMax, adjusted))
}

// SubIndexDO computes the dissolved oxygen sub-index from a raw DO
// reading in mg/l. Saturation above 140% is super-saturation and scores
// a flat 50; a negative saturation value scores the degenerate 2.
func SubIndexDO(do float64, temperature *float64) float64 {
	percentSaturation := (do / SaturationConstant(temperature)) * 100

	score, ok := evalSegments(percentSaturation, doSegments)
	if !ok {
		if percentSaturation > 140 {
			score = 50.0
		} else {
			score = 2.0
		}
	}
	return clampScore(score)
}

// SubIndexFC computes the fecal coliform sub-index from a raw
// MPN/100ml count. Counts below 1 MPN are effectively undetectable and
// score the best-case 97; counts above 100,000 score a flat 2.
func SubIndexFC(count float64) float64 {
	if count < 1 {
		return 97.0
	}

	var score float64
	for _, s := range fcSegments {
		if s.contains(count) {
			score = s.intercept + s.slope*math.Log10(count)
			return clampScore(score)
		}
	}
	return clampScore(2.0)
}

// SubIndexPH computes the pH sub-index. Values outside [2, 12] score 0.
func SubIndexPH(ph float64) float64 {
	score, ok := evalSegments(ph, phSegments)
	if !ok {
		score = 0.0
	}
	return clampScore(score)
}

// SubIndexBOD computes the biochemical oxygen demand sub-index from a
// raw BOD reading in mg/l. Values above 30 score a flat 2.
func SubIndexBOD(bod float64) float64 {
	score, ok := evalSegments(bod, bodSegments)
	if !ok {
		score = 2.0
	}
	return clampScore(score)
}
