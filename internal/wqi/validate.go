package wqi

import "fmt"

// ValidationResult is the advisory plausibility check over a raw
// reading. An invalid reading still scores. Callers decide whether to
// surface the issues; nothing in this package acts on them.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

// plausibleBound is the physically plausible range for one parameter.
type plausibleBound struct {
	name   string
	unit   string
	lo, hi float64
}

var plausibleBounds = []plausibleBound{
	{name: "dissolved oxygen", unit: "mg/l", lo: 0, hi: 20},
	{name: "fecal coliform", unit: "MPN/100ml", lo: 0, hi: 1000000},
	{name: "ph", unit: "", lo: 0, hi: 14},
	{name: "bod", unit: "mg/l", lo: 0, hi: 100},
}

// Validate checks a reading against the plausibility bounds and returns
// one issue string per violated bound, in parameter order. Temperature
// is not bounded. Validation never blocks or alters WQI computation.
func Validate(r Reading) ValidationResult {
	values := []float64{r.DissolvedOxygen, r.FecalColiform, r.Ph, r.Bod}

	issues := make([]string, 0, len(plausibleBounds))
	for i, b := range plausibleBounds {
		v := values[i]
		if v >= b.lo && v <= b.hi {
			continue
		}
		if b.unit != "" {
			issues = append(issues, fmt.Sprintf("%s %g %s outside plausible range [%g, %g]", b.name, v, b.unit, b.lo, b.hi))
		} else {
			issues = append(issues, fmt.Sprintf("%s %g outside plausible range [%g, %g]", b.name, v, b.lo, b.hi))
		}
	}

	return ValidationResult{
		IsValid: len(issues) == 0,
		Issues:  issues,
	}
}
