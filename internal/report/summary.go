package report

import (
	"sort"

	"mfp-stats/internal/season"
)

type PlayerRef struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
}

type Placed struct {
	Position int `json:"position"`
	PlayerRef
}

type SeasonSummary struct {
	season.Classified
	Group string `json:"league_group"`

	HasFinals    bool     `json:"has_finals"`
	FinalsStatus string   `json:"finals_status"`
	TopFour      []Placed `json:"top_four"`

	QualificationThreshold int `json:"qualification_threshold"`
	QualifiedCount         int `json:"qualified_players_count"`
	PlayerCount            int `json:"player_count"`
}

const groupOther = "other"

func summarize(a Analysis) SeasonSummary {
	sum := SeasonSummary{
		Classified:             a.Season,
		Group:                  groupOther,
		HasFinals:              a.Standings.Finals.Linked(),
		FinalsStatus:           a.Standings.Finals.Kind.String(),
		QualificationThreshold: a.Season.QualificationThreshold(),
		PlayerCount:            len(a.Record.Players),
	}
	if g, ok := a.Season.Group(); ok {
		sum.Group = string(g)
	}

	for i, st := range a.Standings.Top(4) {
		sum.TopFour = append(sum.TopFour, Placed{
			Position:  i + 1,
			PlayerRef: PlayerRef{PlayerID: st.PlayerID, Name: a.name(st.PlayerID)},
		})
	}

	for _, p := range a.Record.Players {
		st, ok := a.Standings.Get(p.ID)
		if ok && st.WeeksPlayed >= sum.QualificationThreshold {
			sum.QualifiedCount++
		}
	}
	return sum
}

// years lists the distinct known years of league seasons, newest first.
func years(summaries []SeasonSummary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range summaries {
		if s.Group == groupOther || s.Year == season.YearUnknown || seen[s.Year] {
			continue
		}
		seen[s.Year] = true
		out = append(out, s.Year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
