package leaderboard

import (
	"sort"

	"mfp-stats/internal/season"
)

type Board struct {
	Group        season.Group  `json:"group"`
	TotalPoints  []Entry       `json:"total_points"`
	WeeklyWins   []Entry       `json:"weekly_wins"`
	TopFinishes  []Entry       `json:"top_4_finishes"`
	BestSeason   []Entry       `json:"best_season_score"`
	MostImproved []Improvement `json:"most_improved"`
}

type Boards struct {
	MinWinningScore float64                `json:"min_winning_score"`
	Groups          map[season.Group]Board `json:"groups"`
}

func (b *Builder) Build() Boards {
	out := Boards{
		MinWinningScore: b.MinWinningScore(),
		Groups:          make(map[season.Group]Board, len(season.Groups)),
	}
	for _, g := range season.Groups {
		out.Groups[g] = b.board(g, out.MinWinningScore)
	}
	return out
}

func (b *Builder) board(g season.Group, minWinning float64) Board {
	entries := sortedEntries(b.Entries(g))

	return Board{
		Group:        g,
		TotalPoints:  b.truncate(totalPoints(entries)),
		WeeklyWins:   weeklyWins(entries),
		TopFinishes:  topFinishes(entries),
		BestSeason:   b.truncate(b.bestSeason(entries, minWinning)),
		MostImproved: truncateImprovements(b.mostImproved(g, entries), b.cfg.Limit),
	}
}

// sortedEntries lists entries by player id so that every later stable sort
// breaks ties by id.
func sortedEntries(m map[int]*Entry) []Entry {
	out := make([]Entry, 0, len(m))
	for _, e := range m {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func totalPoints(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RawPoints > out[j].RawPoints })
	return out
}

func weeklyWins(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.WeeklyWins > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeeklyWins > out[j].WeeklyWins })
	return out
}

func topFinishes(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.TopFinishCount() > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TopFinishes, out[j].TopFinishes
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return false
	})
	return out
}

func (b *Builder) bestSeason(entries []Entry, minWinning float64) []Entry {
	var out []Entry
	for _, e := range entries {
		best := e.BestSeason
		if best == nil || !best.HasFinal {
			continue
		}
		if best.Score < minWinning || best.FinalPosition > b.cfg.BestSeasonMaxPosition {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BestSeason.Score > out[j].BestSeason.Score })
	return out
}

// mostImproved keeps each player's best relative gain in adjusted points
// between two adjacent seasons of the group.
func (b *Builder) mostImproved(g season.Group, entries []Entry) []Improvement {
	history := b.History(g)
	minWeeks := b.cfg.MinWeeksForImprovement

	var out []Improvement
	for _, e := range entries {
		results := history[e.PlayerID]
		var best *Improvement
		for i := 0; i+1 < len(results); i++ {
			from, to := results[i], results[i+1]
			if from.WeeksPlayed < minWeeks || to.WeeksPlayed < minWeeks {
				continue
			}
			if from.AdjustedPoints <= 0 || to.AdjustedPoints <= from.AdjustedPoints {
				continue
			}
			pct := (to.AdjustedPoints - from.AdjustedPoints) / from.AdjustedPoints
			if best == nil || pct > best.Percent {
				best = &Improvement{PlayerID: e.PlayerID, Name: e.Name, Percent: pct, From: from, To: to}
			}
		}
		if best != nil {
			out = append(out, *best)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out
}

func sortResults(results []SeasonResult) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].SeasonID < results[j].SeasonID })
}

func (b *Builder) truncate(entries []Entry) []Entry {
	if b.cfg.Limit > 0 && len(entries) > b.cfg.Limit {
		return entries[:b.cfg.Limit]
	}
	return entries
}

func truncateImprovements(in []Improvement, limit int) []Improvement {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
