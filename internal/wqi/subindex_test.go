package wqi

import (
	"math"
	"testing"
)

func floatPtr(f float64) *float64 {
	return &f
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestSubIndexDO(t *testing.T) {
	tests := []struct {
		name        string
		do          float64
		temperature *float64
		expected    float64
	}{
		{
			name:     "zero DO scores the curve intercept",
			do:       0.0,
			expected: 0.18,
		},
		{
			name:     "low saturation branch",
			do:       2.59, // ~39.85% saturation
			expected: 26.478462,
		},
		{
			name:     "mid saturation branch just above 40%",
			do:       2.61, // ~40.15% saturation
			expected: 33.430000,
		},
		{
			name:     "exactly 100% saturation clamps at 100",
			do:       6.5,
			expected: 100.0,
		},
		{
			name:     "supersaturation branch",
			do:       8.0, // ~123.08% saturation
			expected: 87.032308,
		},
		{
			name:     "above 140% saturation scores flat 50",
			do:       9.2,
			expected: 50.0,
		},
		{
			name:     "negative DO scores degenerate 2",
			do:       -1.0,
			expected: 2.0,
		},
		{
			name:        "temperature adjustment pushes sample into supersaturation",
			do:          8.0,
			temperature: floatPtr(30.0), // constant 5.525, ~144.8% saturation
			expected:    50.0,
		},
		{
			// Constant clamps to 9.0, so 9.0 mg/l is exactly 100%
			// saturation: 1.17*100-13.55 = 103.45, clamped to 100.
			name:        "cold sample clamps constant at 9.0",
			do:          9.0,
			temperature: floatPtr(-40.0), // unclamped constant would be 12.35
			expected:    100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubIndexDO(tt.do, tt.temperature)
			if !almostEqual(got, tt.expected, 1e-6) {
				t.Errorf("Expected DO sub-index %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSaturationConstant(t *testing.T) {
	tests := []struct {
		name        string
		temperature *float64
		expected    float64
	}{
		{
			name:     "no temperature uses the fixed constant",
			expected: 6.5,
		},
		{
			name:        "reference temperature leaves constant unchanged",
			temperature: floatPtr(20.0),
			expected:    6.5,
		},
		{
			name:        "warm sample lowers the constant",
			temperature: floatPtr(30.0),
			expected:    5.525,
		},
		{
			name:        "hot sample clamps at 4.0",
			temperature: floatPtr(60.0), // unclamped would be 2.6
			expected:    4.0,
		},
		{
			name:        "cold sample clamps at 9.0",
			temperature: floatPtr(-40.0), // unclamped would be 12.35
			expected:    9.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SaturationConstant(tt.temperature)
			if !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("Expected saturation constant %v, got %v", tt.expected, got)
			}
		})
	}
}

// The DO transfer function is discontinuous at 40% saturation: the low
// branch approaches 26.58 while the mid branch starts near 33.25. The
// gap is in the published standard and must not be smoothed out.
func TestSubIndexDO_DiscontinuityAt40Percent(t *testing.T) {
	below := SubIndexDO(2.599, nil) // just under 40% saturation
	above := SubIndexDO(2.601, nil) // just over 40% saturation

	if above-below < 6.0 {
		t.Errorf("Expected ~6.7 point jump across 40%% saturation, got %v -> %v", below, above)
	}
}

func TestSubIndexFC(t *testing.T) {
	tests := []struct {
		name     string
		count    float64
		expected float64
	}{
		{
			name:     "undetectable count scores best case 97",
			count:    0.5,
			expected: 97.0,
		},
		{
			name:     "count of exactly 1 evaluates the formula, not the best case",
			count:    1.0,
			expected: 97.2,
		},
		{
			name:     "low contamination branch",
			count:    500,
			expected: 25.407398,
		},
		{
			name:     "boundary count 1000 belongs to the low branch",
			count:    1000,
			expected: 17.4,
		},
		{
			name:     "high contamination branch",
			count:    50000,
			expected: 5.912982,
		},
		{
			name:     "boundary count 100000 belongs to the high branch",
			count:    100000,
			expected: 3.58, // 42.33 - 7.75*5
		},
		{
			name:     "count above 100000 scores flat 2",
			count:    100001,
			expected: 2.0,
		},
		{
			name:     "grossly contaminated sample scores flat 2",
			count:    2000000,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubIndexFC(tt.count)
			if !almostEqual(got, tt.expected, 1e-4) {
				t.Errorf("Expected FC sub-index %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSubIndexPH(t *testing.T) {
	tests := []struct {
		name     string
		ph       float64
		expected float64
	}{
		{
			name:     "strongly acidic below 2 scores 0",
			ph:       1.0,
			expected: 0.0,
		},
		{
			name:     "acidic branch lower bound",
			ph:       2.0,
			expected: 30.8,
		},
		{
			name:     "acidic branch",
			ph:       3.0,
			expected: 38.15,
		},
		{
			name:     "pH 5 belongs to the second branch, not the first",
			ph:       5.0,
			expected: 24.83, // -142.67 + 33.5*5
		},
		{
			name:     "near-neutral branch",
			ph:       7.0,
			expected: 91.83,
		},
		{
			name:     "just below 7.3 clamps at 100",
			ph:       7.29, // raw value 101.545
			expected: 100.0,
		},
		{
			name:     "pH 7.3 belongs to the alkaline branch",
			ph:       7.3,
			expected: 99.055,
		},
		{
			name:     "alkaline branch",
			ph:       7.5,
			expected: 93.085,
		},
		{
			name:     "pH 10 belongs to the alkaline branch",
			ph:       10.0,
			expected: 18.46,
		},
		{
			name:     "strongly alkaline branch",
			ph:       10.5,
			expected: 12.17,
		},
		{
			name:     "upper bound of the scale",
			ph:       12.0,
			expected: 0.17,
		},
		{
			name:     "above 12 scores 0",
			ph:       12.5,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubIndexPH(tt.ph)
			if !almostEqual(got, tt.expected, 1e-6) {
				t.Errorf("Expected pH sub-index %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSubIndexBOD(t *testing.T) {
	tests := []struct {
		name     string
		bod      float64
		expected float64
	}{
		{
			name:     "pristine water",
			bod:      0.0,
			expected: 96.67,
		},
		{
			name:     "clean branch",
			bod:      2.0,
			expected: 82.67,
		},
		{
			name:     "boundary BOD 10 belongs to the clean branch",
			bod:      10.0,
			expected: 26.67,
		},
		{
			name:     "polluted branch",
			bod:      10.5,
			expected: 25.985,
		},
		{
			name:     "boundary BOD 30 belongs to the polluted branch",
			bod:      30.0,
			expected: 2.0, // 38.9 - 1.23*30
		},
		{
			name:     "above 30 scores flat 2",
			bod:      31.0,
			expected: 2.0,
		},
		{
			name:     "negative BOD falls to the fallback",
			bod:      -5.0,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubIndexBOD(tt.bod)
			if !almostEqual(got, tt.expected, 1e-6) {
				t.Errorf("Expected BOD sub-index %v, got %v", tt.expected, got)
			}
		})
	}
}

// Every sub-index must stay inside [0,100] no matter how implausible
// the raw value is.
func TestSubIndexRangeInvariant(t *testing.T) {
	values := []float64{-1e9, -100, -1, 0, 0.001, 0.5, 1, 2, 6.5, 7.3, 9.1, 12, 14, 40, 100, 1000, 99999, 1e6, 1e12}

	for _, v := range values {
		scores := map[string]float64{
			"DO":  SubIndexDO(v, nil),
			"FC":  SubIndexFC(v),
			"pH":  SubIndexPH(v),
			"BOD": SubIndexBOD(v),
		}
		for param, score := range scores {
			if score < 0 || score > 100 {
				t.Errorf("%s sub-index for input %v out of range: %v", param, v, score)
			}
		}
	}
}
