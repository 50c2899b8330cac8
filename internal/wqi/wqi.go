// Package wqi implements the CPCB-modified Water Quality Index: four
// piecewise-linear parameter sub-indices, a fixed-weight aggregation
// and the regulatory classification tables from the Maharashtra Water
// Quality Status Report. Everything in this package is a pure function
// over immutable value types and is safe to call from any number of
// goroutines without coordination.
package wqi

// CPCB modified weights. They must sum to exactly 1.00.
const (
	WeightDO  = 0.31
	WeightFC  = 0.28
	WeightPH  = 0.22
	WeightBOD = 0.19
)

// Reading is one raw water sample. Temperature is optional and only
// affects the DO sub-index; nil means "not measured", never zero.
type Reading struct {
	DissolvedOxygen float64  `json:"dissolvedOxygen"` // mg/l
	FecalColiform   float64  `json:"fecalColiform"`   // MPN/100ml
	Ph              float64  `json:"ph"`
	Bod             float64  `json:"bod"`                   // mg/l
	Temperature     *float64 `json:"temperature,omitempty"` // °C
}

// SubIndexSet holds the four unweighted sub-index scores, each in [0,100].
type SubIndexSet struct {
	DissolvedOxygen float64 `json:"dissolvedOxygen"`
	FecalColiform   float64 `json:"fecalColiform"`
	Ph              float64 `json:"ph"`
	Bod             float64 `json:"bod"`
}

// WeightedIndexSet holds the sub-index scores after weighting.
type WeightedIndexSet struct {
	DissolvedOxygen float64 `json:"dissolvedOxygen"`
	FecalColiform   float64 `json:"fecalColiform"`
	Ph              float64 `json:"ph"`
	Bod             float64 `json:"bod"`
}

// Result is the complete WQI assessment for one reading. The sub-index
// and weighted sets are carried along so every score stays auditable
// against its inputs without re-running the calculation.
type Result struct {
	WQI             float64          `json:"wqi"`
	Classification  string           `json:"classification"`
	CPCBClass       string           `json:"cpcbClass"`
	MPCBClass       string           `json:"mpcbClass"`
	Status          string           `json:"status"`
	SubIndices      SubIndexSet      `json:"subIndices"`
	WeightedIndices WeightedIndexSet `json:"weightedIndices"`
}

// weighted applies the fixed CPCB weights to each sub-index.
func (s SubIndexSet) weighted() WeightedIndexSet {
	return WeightedIndexSet{
		DissolvedOxygen: s.DissolvedOxygen * WeightDO,
		FecalColiform:   s.FecalColiform * WeightFC,
		Ph:              s.Ph * WeightPH,
		Bod:             s.Bod * WeightBOD,
	}
}

func (w WeightedIndexSet) sum() float64 {
	return w.DissolvedOxygen + w.FecalColiform + w.Ph + w.Bod
}

// Compute scores a reading: sub-indices, weighted aggregation, then the
// four classification tables. There is no error path; every numeric
// input resolves to a score through the fallback branches.
func Compute(r Reading) Result {
	sub := SubIndexSet{
		DissolvedOxygen: SubIndexDO(r.DissolvedOxygen, r.Temperature),
		FecalColiform:   SubIndexFC(r.FecalColiform),
		Ph:              SubIndexPH(r.Ph),
		Bod:             SubIndexBOD(r.Bod),
	}
	weighted := sub.weighted()

	// The clamp is redundant while the weights sum to 1.0 and every
	// sub-index is already in [0,100]; kept as an invariant guard.
	score := clampScore(weighted.sum())

	return Result{
		WQI:             score,
		Classification:  Classification(score),
		CPCBClass:       CPCBClass(score),
		MPCBClass:       MPCBClass(score),
		Status:          PollutionStatus(score),
		SubIndices:      sub,
		WeightedIndices: weighted,
	}
}
