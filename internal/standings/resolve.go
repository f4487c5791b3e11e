package standings

import (
	"sort"

	"mfp-stats/internal/domain"
)

type Standing struct {
	PlayerID int `json:"player_id"`

	// 0 when the player has no qualifying standing
	QualifyingPosition int `json:"qualifying_position"`
	HasQualifying      bool `json:"has_qualifying"`

	// 0 when the player has neither a finals nor a qualifying position
	FinalPosition int  `json:"final_position"`
	HasFinal      bool `json:"has_final"`

	PlayedInFinals bool    `json:"played_in_finals"`
	PointsAdjusted float64 `json:"points_adjusted"`
	RawPoints      float64 `json:"raw_points"`
	WeeksPlayed    int     `json:"weeks_played"`
	AverageScore   float64 `json:"average_score"`
}

// Table is the resolved standings of one season.
type Table struct {
	Finals   Finals
	ByPlayer map[int]Standing

	// ranking order used for top-N extraction
	Ranked []Standing
}

func (t Table) Get(playerID int) (Standing, bool) {
	s, ok := t.ByPlayer[playerID]
	return s, ok
}

func (t Table) Top(n int) []Standing {
	if n > len(t.Ranked) {
		n = len(t.Ranked)
	}
	return t.Ranked[:n]
}

// Resolve reconciles qualifying standings with the finals outcome. Players in
// populated finals results take their finals position; everyone else keeps
// the qualifying position.
func Resolve(record *domain.SeasonRecord, finals Finals) Table {
	finalsPos := finals.positions()

	table := Table{Finals: finals, ByPlayer: make(map[int]Standing)}

	ids := rosterIDs(record)
	for _, pid := range ids {
		weeks := record.PlayerWeeks(pid)
		st := Standing{
			PlayerID:     pid,
			RawPoints:    weeks.RawPoints,
			WeeksPlayed:  weeks.WeeksPlayed,
			AverageScore: weeks.Average(),
		}
		if q, ok := record.Standing(pid); ok {
			st.HasQualifying = true
			st.QualifyingPosition = q.Position
			st.PointsAdjusted = q.PointsAdjusted
			st.FinalPosition = q.Position
			st.HasFinal = true
		}
		if pos, ok := finalsPos[pid]; ok {
			st.PlayedInFinals = true
			st.FinalPosition = pos
			st.HasFinal = true
		}
		table.ByPlayer[pid] = st
	}

	table.Ranked = rank(table.ByPlayer, finals)
	return table
}

// rank orders finalists by finals position, then every remaining player with
// a qualifying standing by (qualifying position, average score desc).
func rank(byPlayer map[int]Standing, finals Finals) []Standing {
	ranked := make([]Standing, 0, len(byPlayer))
	inFinals := make(map[int]bool)

	if finals.Kind == FinalsAvailable {
		for _, r := range finals.Results {
			if inFinals[r.PlayerID] {
				continue
			}
			inFinals[r.PlayerID] = true
			st, ok := byPlayer[r.PlayerID]
			if !ok {
				st = Standing{PlayerID: r.PlayerID, FinalPosition: r.Position, HasFinal: true, PlayedInFinals: true}
			}
			ranked = append(ranked, st)
		}
	}

	rest := make([]Standing, 0, len(byPlayer))
	for _, st := range byPlayer {
		if inFinals[st.PlayerID] || !st.HasQualifying {
			continue
		}
		rest = append(rest, st)
	}
	sort.Slice(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		if a.QualifyingPosition != b.QualifyingPosition {
			return a.QualifyingPosition < b.QualifyingPosition
		}
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		return a.PlayerID < b.PlayerID
	})

	return append(ranked, rest...)
}

// rosterIDs is every player on the roster plus anyone who only appears in the
// qualifying standings, in first-seen order.
func rosterIDs(record *domain.SeasonRecord) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, p := range record.Players {
		if !seen[p.ID] {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	for _, s := range record.Standings {
		if !seen[s.PlayerID] {
			seen[s.PlayerID] = true
			ids = append(ids, s.PlayerID)
		}
	}
	return ids
}
