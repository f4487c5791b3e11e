package standings

import (
	"sort"

	"mfp-stats/internal/domain"
)

type FinalsKind int

const (
	// NoFinals: the season has no finals link.
	NoFinals FinalsKind = iota
	// FinalsUnavailable: a link exists but no results could be fetched.
	FinalsUnavailable
	// FinalsAvailable: a link exists and results are populated.
	FinalsAvailable
)

func (k FinalsKind) String() string {
	switch k {
	case FinalsUnavailable:
		return "unavailable"
	case FinalsAvailable:
		return "available"
	}
	return "none"
}

// Finals is the outcome of the finals lookup for one season.
type Finals struct {
	Kind          FinalsKind
	TournamentIDs []int
	Results       []domain.FinalsResult
}

func None() Finals {
	return Finals{Kind: NoFinals}
}

func Unavailable(tournamentIDs []int) Finals {
	return Finals{Kind: FinalsUnavailable, TournamentIDs: tournamentIDs}
}

// Available sorts results by position; an empty result set is reported as
// Unavailable.
func Available(tournamentIDs []int, results []domain.FinalsResult) Finals {
	if len(results) == 0 {
		return Unavailable(tournamentIDs)
	}
	sorted := make([]domain.FinalsResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return Finals{Kind: FinalsAvailable, TournamentIDs: tournamentIDs, Results: sorted}
}

func (f Finals) Linked() bool {
	return f.Kind != NoFinals
}

func (f Finals) positions() map[int]int {
	out := make(map[int]int, len(f.Results))
	for _, r := range f.Results {
		if _, seen := out[r.PlayerID]; !seen {
			out[r.PlayerID] = r.Position
		}
	}
	return out
}
