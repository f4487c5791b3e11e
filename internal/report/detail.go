package report

import (
	"sort"

	"mfp-stats/internal/outcome"
)

type PlayerLine struct {
	PlayerRef
	QualifyingPosition int  `json:"qualifying_position,omitempty"`
	FinalPosition      int  `json:"final_position,omitempty"`
	PlayedInFinals     bool `json:"played_in_finals"`

	AdjustedPoints float64 `json:"total_adjusted_points"`
	RawPoints      float64 `json:"total_raw_points"`
	WeeksPlayed    int     `json:"weeks_played"`
	AveragePerWeek float64 `json:"average_points_per_week"`

	// indexed by week number - 1, nil for weeks not played
	WeeklyScores []*float64 `json:"weekly_scores"`

	Games outcome.PlayerStats `json:"game_outcomes"`
}

type SeasonDetail struct {
	Summary             SeasonSummary `json:"season"`
	Players             []PlayerLine  `json:"players"`
	FinalsTournamentIDs []int         `json:"finals_tournament_ids,omitempty"`
	FinalsResults       []Placed      `json:"finals_results,omitempty"`
}

func detail(a Analysis, sum SeasonSummary) SeasonDetail {
	d := SeasonDetail{
		Summary:             sum,
		FinalsTournamentIDs: a.Standings.Finals.TournamentIDs,
	}
	for _, r := range a.Standings.Finals.Results {
		d.FinalsResults = append(d.FinalsResults, Placed{
			Position:  r.Position,
			PlayerRef: PlayerRef{PlayerID: r.PlayerID, Name: a.name(r.PlayerID)},
		})
	}

	weeks := len(a.Record.TournamentIDs)
	for _, p := range a.Record.Players {
		st, _ := a.Standings.Get(p.ID)
		line := PlayerLine{
			PlayerRef:      PlayerRef{PlayerID: p.ID, Name: p.Name},
			PlayedInFinals: st.PlayedInFinals,
			AdjustedPoints: st.PointsAdjusted,
			RawPoints:      round2(st.RawPoints),
			WeeksPlayed:    st.WeeksPlayed,
			AveragePerWeek: round2(st.AverageScore),
			WeeklyScores:   make([]*float64, weeks),
			Games:          a.Outcomes.Player(p.ID),
		}
		if st.HasQualifying {
			line.QualifyingPosition = st.QualifyingPosition
		}
		if st.HasFinal {
			line.FinalPosition = st.FinalPosition
		}
		for week, points := range a.Record.PlayerWeeks(p.ID).ByWeek {
			v := points
			line.WeeklyScores[week-1] = &v
		}
		d.Players = append(d.Players, line)
	}

	sort.SliceStable(d.Players, func(i, j int) bool {
		x, y := d.Players[i], d.Players[j]
		if (x.FinalPosition == 0) != (y.FinalPosition == 0) {
			return y.FinalPosition == 0
		}
		if x.FinalPosition != y.FinalPosition {
			return x.FinalPosition < y.FinalPosition
		}
		return x.PlayerID < y.PlayerID
	})
	return d
}
