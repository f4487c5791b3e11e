package leaderboard

import (
	"mfp-stats/internal/domain"
	"mfp-stats/internal/outcome"
	"mfp-stats/internal/season"
	"mfp-stats/internal/standings"
)

type Config struct {
	Limit                  int
	MinWeeksForImprovement int
	BestSeasonMaxPosition  int
}

func DefaultConfig() Config {
	return Config{
		Limit:                  25,
		MinWeeksForImprovement: 5,
		BestSeasonMaxPosition:  10,
	}
}

// Input is everything the builder needs to know about one season.
type Input struct {
	Season    season.Classified
	Record    *domain.SeasonRecord
	Standings standings.Table
	Outcomes  *outcome.Season
}

// Builder owns the per-group accumulators. Seasons must be added in
// ascending id order for the output to be deterministic.
type Builder struct {
	cfg     Config
	entries map[season.Group]map[int]*Entry
	history map[season.Group]map[int][]SeasonResult

	winningScores []float64
}

func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		cfg:     cfg,
		entries: make(map[season.Group]map[int]*Entry),
		history: make(map[season.Group]map[int][]SeasonResult),
	}
	for _, g := range []season.Group{season.GroupMFP, season.GroupLadies} {
		b.entries[g] = make(map[int]*Entry)
		b.history[g] = make(map[int][]SeasonResult)
	}
	return b
}

// Add folds one season into its group. Seasons outside the MFP and ladies
// leagues are ignored.
func (b *Builder) Add(in Input) {
	g, ok := in.Season.Group()
	if !ok {
		return
	}
	acc := b.entries[g]

	b.foldStandings(g, acc, in)
	foldWeeks(acc, in.Record)
	foldGames(acc, in.Outcomes)
}

func (b *Builder) foldStandings(g season.Group, acc map[int]*Entry, in Input) {
	for _, p := range in.Record.Players {
		e, ok := acc[p.ID]
		if !ok {
			e = &Entry{PlayerID: p.ID}
			acc[p.ID] = e
		}
		e.Name = p.Name
		if p.IFPAID != 0 {
			e.IFPAID = p.IFPAID
		}

		st, _ := in.Standings.Get(p.ID)
		b.history[g][p.ID] = append(b.history[g][p.ID], SeasonResult{
			SeasonID:       in.Season.ID,
			SeasonTitle:    in.Season.Title,
			Year:           in.Season.Year,
			SeasonName:     in.Season.Name,
			AdjustedPoints: st.PointsAdjusted,
			WeeksPlayed:    st.WeeksPlayed,
		})

		if !st.HasQualifying {
			continue
		}
		e.AdjustedPoints += st.PointsAdjusted
		e.SeasonsPlayed++

		if st.HasFinal && st.FinalPosition >= 1 && st.FinalPosition <= len(e.TopFinishes) {
			e.TopFinishes[st.FinalPosition-1]++
		}
		if st.HasFinal && st.FinalPosition == 1 {
			b.winningScores = append(b.winningScores, st.PointsAdjusted)
		}
		if st.PointsAdjusted > e.bestScore() {
			e.BestSeason = &BestSeason{
				Score:         st.PointsAdjusted,
				SeasonID:      in.Season.ID,
				SeasonTitle:   in.Season.Title,
				Year:          in.Season.Year,
				SeasonName:    in.Season.Name,
				FinalPosition: st.FinalPosition,
				HasFinal:      st.HasFinal,
			}
		}
	}
}

func foldWeeks(acc map[int]*Entry, record *domain.SeasonRecord) {
	for _, w := range record.Weeks() {
		for pid, points := range w.Points {
			if e, ok := acc[pid]; ok {
				e.RawPoints += points
				e.WeeksPlayed++
			}
		}
		if winner, ok := WeeklyWinner(w.Points); ok {
			if e, ok := acc[winner]; ok {
				e.WeeklyWins++
			}
		}
	}
}

// WeeklyWinner is the highest scorer of a week. Equal top scores go to the
// lowest player id.
func WeeklyWinner(points map[int]float64) (int, bool) {
	winner, found := 0, false
	best := 0.0
	for pid, p := range points {
		if !found || p > best || (p == best && pid < winner) {
			winner, best, found = pid, p, true
		}
	}
	return winner, found
}

func foldGames(acc map[int]*Entry, outcomes *outcome.Season) {
	if outcomes == nil {
		return
	}
	for pid, ps := range outcomes.ByPlayer {
		if e, ok := acc[pid]; ok {
			e.GamesWon += ps.Wins
		}
	}
}

// MinWinningScore is the lowest adjusted score of any season winner, 0 when
// no winner has been seen.
func (b *Builder) MinWinningScore() float64 {
	if len(b.winningScores) == 0 {
		return 0
	}
	min := b.winningScores[0]
	for _, s := range b.winningScores[1:] {
		if s < min {
			min = s
		}
	}
	return min
}

// Entries returns the finalized accumulator of a group. The combined group is
// the merge of the MFP and ladies groups.
func (b *Builder) Entries(g season.Group) map[int]*Entry {
	var out map[int]*Entry
	switch g {
	case season.GroupCombined:
		out = cloneEntries(b.entries[season.GroupMFP])
		for pid, e := range b.entries[season.GroupLadies] {
			if dst, ok := out[pid]; ok {
				dst.merge(e)
				continue
			}
			out[pid] = e.clone()
		}
	default:
		out = cloneEntries(b.entries[g])
	}
	for _, e := range out {
		e.finalize()
	}
	return out
}

// History returns each player's seasons in a group, ascending by season id.
func (b *Builder) History(g season.Group) map[int][]SeasonResult {
	out := make(map[int][]SeasonResult)
	groups := []season.Group{g}
	if g == season.GroupCombined {
		groups = []season.Group{season.GroupMFP, season.GroupLadies}
	}
	for _, src := range groups {
		for pid, results := range b.history[src] {
			out[pid] = append(out[pid], results...)
		}
	}
	for _, results := range out {
		sortResults(results)
	}
	return out
}

func cloneEntries(in map[int]*Entry) map[int]*Entry {
	out := make(map[int]*Entry, len(in))
	for pid, e := range in {
		out[pid] = e.clone()
	}
	return out
}
