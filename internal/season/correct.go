package season

import "sort"

// CorrectionPolicy holds the known historical facts used to fill in years
// that a title does not state.
type CorrectionPolicy struct {
	SentinelID     int
	SentinelLeague string
	SentinelYear   string

	HistoricalLeague string
	HistoricalYear   string
	HistoricalCount  int

	DefaultYear string
}

func DefaultCorrectionPolicy() CorrectionPolicy {
	return CorrectionPolicy{
		SentinelID:       5198,
		SentinelLeague:   LeagueMFP,
		SentinelYear:     "2026",
		HistoricalLeague: LeagueLadies,
		HistoricalYear:   "2018",
		HistoricalCount:  2,
		DefaultYear:      "2024",
	}
}

// CorrectYears replaces every unknown year and returns a new slice sorted
// descending by id. The input is not modified.
func CorrectYears(seasons []Classified, policy CorrectionPolicy) []Classified {
	out := make([]Classified, len(seasons))
	copy(out, seasons)

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	historicalAssigned := 0
	for i := range out {
		s := &out[i]
		if s.ID == policy.SentinelID && s.League == policy.SentinelLeague {
			s.Year = policy.SentinelYear
			continue
		}
		if s.Year != YearUnknown {
			continue
		}
		if s.League == policy.HistoricalLeague && historicalAssigned < policy.HistoricalCount {
			s.Year = policy.HistoricalYear
			historicalAssigned++
			continue
		}
		s.Year = policy.DefaultYear
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
