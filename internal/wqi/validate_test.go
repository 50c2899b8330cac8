package wqi

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		reading        Reading
		expectedValid  bool
		expectedIssues int
	}{
		{
			name:          "plausible reading passes",
			reading:       Reading{DissolvedOxygen: 8, FecalColiform: 500, Ph: 7.5, Bod: 2},
			expectedValid: true,
		},
		{
			name:          "boundary values are plausible",
			reading:       Reading{DissolvedOxygen: 20, FecalColiform: 1000000, Ph: 14, Bod: 100},
			expectedValid: true,
		},
		{
			name:           "coliform count above one million",
			reading:        Reading{DissolvedOxygen: 8, FecalColiform: 2000000, Ph: 7.5, Bod: 2},
			expectedValid:  false,
			expectedIssues: 1,
		},
		{
			name:           "negative dissolved oxygen",
			reading:        Reading{DissolvedOxygen: -0.5, FecalColiform: 500, Ph: 7.5, Bod: 2},
			expectedValid:  false,
			expectedIssues: 1,
		},
		{
			name:           "every parameter out of range",
			reading:        Reading{DissolvedOxygen: 25, FecalColiform: -1, Ph: 15, Bod: 250},
			expectedValid:  false,
			expectedIssues: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.reading)

			if result.IsValid != tt.expectedValid {
				t.Errorf("Expected IsValid=%v, got %v (issues: %v)", tt.expectedValid, result.IsValid, result.Issues)
			}
			if len(result.Issues) != tt.expectedIssues {
				t.Errorf("Expected %d issues, got %d: %v", tt.expectedIssues, len(result.Issues), result.Issues)
			}
		})
	}
}

// Issues come back in parameter order DO, FC, pH, BOD so callers can
// render them deterministically.
func TestValidate_IssueOrder(t *testing.T) {
	result := Validate(Reading{DissolvedOxygen: 25, FecalColiform: 2000000, Ph: 15, Bod: 250})

	if len(result.Issues) != 4 {
		t.Fatalf("Expected 4 issues, got %d", len(result.Issues))
	}

	expectedOrder := []string{"dissolved oxygen", "fecal coliform", "ph", "bod"}
	for i, param := range expectedOrder {
		if !strings.HasPrefix(result.Issues[i], param) {
			t.Errorf("Expected issue %d to start with %q, got %q", i, param, result.Issues[i])
		}
	}
}

// Validation is advisory: an invalid reading must still score.
func TestValidate_NeverBlocksComputation(t *testing.T) {
	reading := Reading{DissolvedOxygen: 25, FecalColiform: 2000000, Ph: 15, Bod: 250}

	if Validate(reading).IsValid {
		t.Fatal("Expected reading to be flagged invalid")
	}

	result := Compute(reading)
	if result.WQI < 0 || result.WQI > 100 {
		t.Errorf("Expected a clamped score for the invalid reading, got %v", result.WQI)
	}
	if result.Classification == "" || result.Status == "" {
		t.Error("Expected classification labels for the invalid reading")
	}
}
