package wqi

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightDO + WeightFC + WeightPH + WeightBOD
	if sum != 1.00 {
		t.Errorf("Expected weights to sum to exactly 1.00, got %v", sum)
	}
}

// Reference scenario from the Maharashtra Water Quality Status Report
// worked example: a clean river sample without temperature.
func TestCompute_CleanRiverSample(t *testing.T) {
	result := Compute(Reading{
		DissolvedOxygen: 8.0,
		FecalColiform:   500,
		Ph:              7.5,
		Bod:             2.0,
	})

	expectedSub := SubIndexSet{
		DissolvedOxygen: 87.032308,
		FecalColiform:   25.407398,
		Ph:              93.085,
		Bod:             82.67,
	}

	if !almostEqual(result.SubIndices.DissolvedOxygen, expectedSub.DissolvedOxygen, 1e-4) {
		t.Errorf("Expected DO sub-index ~%v, got %v", expectedSub.DissolvedOxygen, result.SubIndices.DissolvedOxygen)
	}
	if !almostEqual(result.SubIndices.FecalColiform, expectedSub.FecalColiform, 1e-4) {
		t.Errorf("Expected FC sub-index ~%v, got %v", expectedSub.FecalColiform, result.SubIndices.FecalColiform)
	}
	if !almostEqual(result.SubIndices.Ph, expectedSub.Ph, 1e-4) {
		t.Errorf("Expected pH sub-index ~%v, got %v", expectedSub.Ph, result.SubIndices.Ph)
	}
	if !almostEqual(result.SubIndices.Bod, expectedSub.Bod, 1e-4) {
		t.Errorf("Expected BOD sub-index ~%v, got %v", expectedSub.Bod, result.SubIndices.Bod)
	}

	if !almostEqual(result.WQI, 70.28, 0.01) {
		t.Errorf("Expected aggregate WQI ~70.28, got %v", result.WQI)
	}
	if result.Classification != "Good to Excellent" {
		t.Errorf("Expected classification 'Good to Excellent', got %q", result.Classification)
	}
	if result.CPCBClass != "A" {
		t.Errorf("Expected CPCB class 'A', got %q", result.CPCBClass)
	}
	if result.MPCBClass != "A-I" {
		t.Errorf("Expected MPCB grade 'A-I', got %q", result.MPCBClass)
	}
	if result.Status != "Non Polluted" {
		t.Errorf("Expected status 'Non Polluted', got %q", result.Status)
	}

	// Weighted indices must be exactly the sub-indices times the weights.
	if !almostEqual(result.WeightedIndices.DissolvedOxygen, result.SubIndices.DissolvedOxygen*WeightDO, 1e-12) {
		t.Errorf("Weighted DO index does not match sub-index times weight")
	}
	if !almostEqual(result.WeightedIndices.Bod, result.SubIndices.Bod*WeightBOD, 1e-12) {
		t.Errorf("Weighted BOD index does not match sub-index times weight")
	}
}

// Same sample at 30°C: the saturation constant drops to 5.525, pushing
// percent saturation past 140 and the DO sub-index onto the flat 50.
func TestCompute_TemperatureCorrection(t *testing.T) {
	result := Compute(Reading{
		DissolvedOxygen: 8.0,
		FecalColiform:   500,
		Ph:              7.5,
		Bod:             2.0,
		Temperature:     floatPtr(30.0),
	})

	if result.SubIndices.DissolvedOxygen != 50.0 {
		t.Errorf("Expected DO sub-index 50.0 via supersaturation fallback, got %v", result.SubIndices.DissolvedOxygen)
	}
}

// An implausible coliform count still produces a numeric result; the
// validator flags it separately and never blocks the computation.
func TestCompute_ImplausibleInputStillScores(t *testing.T) {
	reading := Reading{
		DissolvedOxygen: 8.0,
		FecalColiform:   2000000,
		Ph:              7.5,
		Bod:             2.0,
	}

	validation := Validate(reading)
	if validation.IsValid {
		t.Error("Expected validation to fail for coliform count above 1,000,000")
	}
	if len(validation.Issues) != 1 {
		t.Errorf("Expected exactly 1 issue, got %d: %v", len(validation.Issues), validation.Issues)
	}

	result := Compute(reading)
	if result.SubIndices.FecalColiform != 2.0 {
		t.Errorf("Expected FC sub-index 2.0 via the >100000 fallback, got %v", result.SubIndices.FecalColiform)
	}
	if math.IsNaN(result.WQI) {
		t.Error("Expected a numeric WQI for an implausible reading")
	}
}

// A pH outside [2,12] contributes exactly zero to the weighted sum.
func TestCompute_ExtremePhContributesZero(t *testing.T) {
	result := Compute(Reading{
		DissolvedOxygen: 8.0,
		FecalColiform:   500,
		Ph:              1.0,
		Bod:             2.0,
	})

	if result.SubIndices.Ph != 0.0 {
		t.Errorf("Expected pH sub-index exactly 0.0, got %v", result.SubIndices.Ph)
	}
	if result.WeightedIndices.Ph != 0.0 {
		t.Errorf("Expected weighted pH index exactly 0.0, got %v", result.WeightedIndices.Ph)
	}
}

func TestCompute_Determinism(t *testing.T) {
	reading := Reading{
		DissolvedOxygen: 5.3,
		FecalColiform:   4200,
		Ph:              8.1,
		Bod:             6.7,
		Temperature:     floatPtr(26.5),
	}

	first := Compute(reading)
	for i := 0; i < 100; i++ {
		if Compute(reading) != first {
			t.Fatal("Expected bit-identical results for identical input")
		}
	}
}

func TestCompute_RangeInvariant(t *testing.T) {
	readings := []Reading{
		{DissolvedOxygen: 0, FecalColiform: 0, Ph: 0, Bod: 0},
		{DissolvedOxygen: 20, FecalColiform: 1e6, Ph: 14, Bod: 100},
		{DissolvedOxygen: -5, FecalColiform: -1, Ph: -3, Bod: -10},
		{DissolvedOxygen: 1e9, FecalColiform: 1e12, Ph: 1000, Bod: 1e6},
		{DissolvedOxygen: 8, FecalColiform: 500, Ph: 7.5, Bod: 2, Temperature: floatPtr(-100)},
		{DissolvedOxygen: 8, FecalColiform: 500, Ph: 7.5, Bod: 2, Temperature: floatPtr(100)},
	}

	for _, r := range readings {
		result := Compute(r)

		scores := []float64{
			result.WQI,
			result.SubIndices.DissolvedOxygen, result.SubIndices.FecalColiform,
			result.SubIndices.Ph, result.SubIndices.Bod,
			result.WeightedIndices.DissolvedOxygen, result.WeightedIndices.FecalColiform,
			result.WeightedIndices.Ph, result.WeightedIndices.Bod,
		}
		for _, s := range scores {
			if s < 0 || s > 100 || math.IsNaN(s) {
				t.Errorf("Score out of [0,100] for reading %+v: %v", r, s)
			}
		}
	}
}

// The engine has no shared state; hammering it from many goroutines
// must produce the same result everywhere.
func TestCompute_ConcurrentSafety(t *testing.T) {
	reading := Reading{
		DissolvedOxygen: 6.2,
		FecalColiform:   1500,
		Ph:              7.9,
		Bod:             4.4,
	}
	expected := Compute(reading)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if Compute(reading) != expected {
					t.Error("Concurrent computation diverged")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// The serialized result shape is consumed by dashboards and exporters;
// field names are part of the contract.
func TestResult_JSONShape(t *testing.T) {
	result := Compute(Reading{DissolvedOxygen: 8, FecalColiform: 500, Ph: 7.5, Bod: 2})

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}

	for _, key := range []string{"wqi", "classification", "cpcbClass", "mpcbClass", "status", "subIndices", "weightedIndices"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected top-level key %q in serialized result", key)
		}
	}

	sub, ok := decoded["subIndices"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected subIndices to be a nested object")
	}
	for _, key := range []string{"dissolvedOxygen", "fecalColiform", "ph", "bod"} {
		if _, ok := sub[key]; !ok {
			t.Errorf("Expected subIndices key %q", key)
		}
	}
}
