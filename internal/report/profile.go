package report

import (
	"sort"

	"mfp-stats/internal/outcome"
	"mfp-stats/internal/season"
)

const topWeeks = 6

type SeasonLine struct {
	SeasonID    int    `json:"series_id"`
	SeasonTitle string `json:"series_name"`
	Year        string `json:"year"`
	SeasonName  string `json:"season_name"`
	League      string `json:"league_name"`

	FinalPosition      int  `json:"final_position,omitempty"`
	QualifyingPosition int  `json:"qualifying_position,omitempty"`
	PlayedInFinals     bool `json:"played_in_finals"`

	RawPoints      float64   `json:"total_raw_points"`
	AdjustedPoints float64   `json:"total_adjusted_points"`
	WeeksPlayed    int       `json:"weeks_played"`
	AveragePerWeek float64   `json:"average_points_per_week"`
	BestWeek       float64   `json:"best_week_score"`
	TopScores      []float64 `json:"top_6_scores"`

	Games outcome.PlayerStats `json:"game_outcomes"`
}

type ChartPoint struct {
	Label string     `json:"label"`
	Stats SeasonLine `json:"stats"`
}

type PlayerProfile struct {
	PlayerRef
	IFPAID int `json:"ifpa_id,omitempty"`

	Seasons  map[season.Group][]SeasonLine   `json:"seasons"`
	Chart    map[season.Group][]ChartPoint   `json:"chart"`
	Machines map[string]outcome.MachineStats `json:"game_performance"`
}

func seasonLine(a Analysis, playerID int) SeasonLine {
	st, _ := a.Standings.Get(playerID)
	line := SeasonLine{
		SeasonID:       a.Season.ID,
		SeasonTitle:    a.Season.Title,
		Year:           a.Season.Year,
		SeasonName:     a.Season.Name,
		League:         a.Season.League,
		PlayedInFinals: st.PlayedInFinals,
		RawPoints:      round2(st.RawPoints),
		AdjustedPoints: st.PointsAdjusted,
		WeeksPlayed:    st.WeeksPlayed,
		AveragePerWeek: round2(st.AverageScore),
		Games:          a.Outcomes.Player(playerID),
	}
	if st.HasQualifying {
		line.QualifyingPosition = st.QualifyingPosition
	}
	if st.HasFinal {
		line.FinalPosition = st.FinalPosition
	}

	for _, points := range a.Record.PlayerWeeks(playerID).ByWeek {
		line.TopScores = append(line.TopScores, points)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(line.TopScores)))
	if len(line.TopScores) > topWeeks {
		line.TopScores = line.TopScores[:topWeeks]
	}
	if len(line.TopScores) > 0 {
		line.BestWeek = line.TopScores[0]
	}
	return line
}

// profiles builds a profile for every rostered player. analyses must be
// sorted ascending by season id.
func profiles(analyses []Analysis) map[int]*PlayerProfile {
	out := make(map[int]*PlayerProfile)
	seasons := make([]*outcome.Season, 0, len(analyses))

	for _, a := range analyses {
		seasons = append(seasons, a.Outcomes)
		g, grouped := a.Season.Group()
		for _, p := range a.Record.Players {
			prof, ok := out[p.ID]
			if !ok {
				prof = &PlayerProfile{
					PlayerRef: PlayerRef{PlayerID: p.ID, Name: p.Name},
					Seasons:   make(map[season.Group][]SeasonLine),
					Chart:     make(map[season.Group][]ChartPoint),
					Machines:  make(map[string]outcome.MachineStats),
				}
				out[p.ID] = prof
			}
			if p.IFPAID != 0 {
				prof.IFPAID = p.IFPAID
			}
			if grouped {
				prof.Seasons[g] = append(prof.Seasons[g], seasonLine(a, p.ID))
			}
		}
	}

	machines := outcome.MergeMachines(seasons...)
	for pid, prof := range out {
		for name, ms := range machines[pid] {
			prof.Machines[name] = *ms
		}
		for g, lines := range prof.Seasons {
			prof.Chart[g] = chart(lines)
			sort.SliceStable(lines, func(i, j int) bool { return lines[i].SeasonID > lines[j].SeasonID })
		}
	}
	return out
}

// chart orders seasons by (year, season id) with unknown years last.
func chart(lines []SeasonLine) []ChartPoint {
	sorted := append([]SeasonLine(nil), lines...)
	key := func(l SeasonLine) string {
		if l.Year == season.YearUnknown {
			return "9999"
		}
		return l.Year
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := key(sorted[i]), key(sorted[j])
		if a != b {
			return a < b
		}
		return sorted[i].SeasonID < sorted[j].SeasonID
	})

	points := make([]ChartPoint, 0, len(sorted))
	for _, l := range sorted {
		points = append(points, ChartPoint{Label: l.SeasonName + " " + l.Year, Stats: l})
	}
	return points
}
