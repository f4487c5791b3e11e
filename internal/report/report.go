package report

import (
	"math"
	"sort"
	"strings"

	"mfp-stats/internal/leaderboard"
	"mfp-stats/internal/nights"
	"mfp-stats/internal/season"
)

// Report is everything the read surface serves, built from one set of
// analyses.
type Report struct {
	// newest first
	Seasons []SeasonSummary `json:"seasons"`
	Years   []string        `json:"years"`

	Details  map[int]SeasonDetail   `json:"-"`
	Profiles map[int]*PlayerProfile `json:"-"`

	Leaderboards leaderboard.Boards `json:"leaderboards"`

	PerfectNights     []nights.Night `json:"perfect_nights"`
	NearPerfectNights []nights.Night `json:"near_perfect_nights"`
}

// Assemble folds analyses into a report. The leaderboard fold runs in
// ascending season id order regardless of the input order.
func Assemble(analyses []Analysis, cfg leaderboard.Config) *Report {
	sorted := append([]Analysis(nil), analyses...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Season.ID < sorted[j].Season.ID })

	r := &Report{
		Details: make(map[int]SeasonDetail, len(sorted)),
	}

	b := leaderboard.NewBuilder(cfg)
	for _, a := range sorted {
		b.Add(leaderboard.Input{
			Season:    a.Season,
			Record:    a.Record,
			Standings: a.Standings,
			Outcomes:  a.Outcomes,
		})

		sum := summarize(a)
		r.Seasons = append(r.Seasons, sum)
		r.Details[a.Season.ID] = detail(a, sum)

		r.PerfectNights = append(r.PerfectNights, a.Perfect...)
		r.NearPerfectNights = append(r.NearPerfectNights, a.NearPerfect...)
	}

	sort.SliceStable(r.Seasons, func(i, j int) bool { return r.Seasons[i].ID > r.Seasons[j].ID })
	r.Years = years(r.Seasons)
	r.Leaderboards = b.Build()
	r.Profiles = profiles(sorted)
	nights.Sort(r.PerfectNights)
	nights.Sort(r.NearPerfectNights)
	return r
}

func (r *Report) Season(id int) (SeasonDetail, bool) {
	d, ok := r.Details[id]
	return d, ok
}

func (r *Report) Player(id int) (*PlayerProfile, bool) {
	p, ok := r.Profiles[id]
	return p, ok
}

func (r *Report) Board(g season.Group) (leaderboard.Board, bool) {
	b, ok := r.Leaderboards.Groups[g]
	return b, ok
}

// SeasonsByGroup splits the summaries by league group, keeping the newest
// first order.
func (r *Report) SeasonsByGroup() map[string][]SeasonSummary {
	out := make(map[string][]SeasonSummary)
	for _, s := range r.Seasons {
		out[s.Group] = append(out[s.Group], s)
	}
	return out
}

// Players lists every profiled player ordered by name.
func (r *Report) Players() []PlayerRef {
	out := make([]PlayerRef, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		out = append(out, p.PlayerRef)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
