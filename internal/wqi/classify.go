package wqi

// band is one row of a classification table: scores at or above min
// take the label. Tables are ordered highest threshold first and
// checked top-down; the floor label catches everything below the last
// threshold.
type band struct {
	min   float64
	label string
}

// The four tables deliberately use different breakpoints. The MPCB
// table collapses the 50 to 63 band that the generic table splits, so
// they must stay independent, not be merged into one shared table.
var (
	genericBands = []band{
		{63, "Good to Excellent"},
		{50, "Medium to Good"},
		{38, "Bad"},
	}

	cpcbBands = []band{
		{63, "A"},
		{50, "B"},
		{38, "C"},
		{25, "D"},
	}

	mpcbBands = []band{
		{63, "A-I"},
		{38, "A-II"},
		{25, "A-III"},
	}

	statusBands = []band{
		{50, "Non Polluted"},
		{38, "Polluted"},
	}
)

func classify(score float64, bands []band, floor string) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return floor
}

// Classification maps a WQI score to the generic quality label.
func Classification(score float64) string {
	return classify(score, genericBands, "Bad to Very Bad")
}

// CPCBClass maps a WQI score to the CPCB letter grade A–E.
func CPCBClass(score float64) string {
	return classify(score, cpcbBands, "E")
}

// MPCBClass maps a WQI score to the MPCB grade A-I through A-IV.
func MPCBClass(score float64) string {
	return classify(score, mpcbBands, "A-IV")
}

// PollutionStatus maps a WQI score to the pollution status label.
func PollutionStatus(score float64) string {
	return classify(score, statusBands, "Heavily Polluted")
}
