package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfp-stats/internal/domain"
	"mfp-stats/internal/outcome"
	"mfp-stats/internal/season"
	"mfp-stats/internal/standings"
)

type seasonSpec struct {
	id      int
	league  string
	year    string
	name    string
	weeks   []map[int]float64
	quals   []domain.QualifyingStanding
	finals  []domain.FinalsResult
	players []int
	games   []domain.Game
}

func input(s seasonSpec) Input {
	rec := &domain.SeasonRecord{
		ID:               s.id,
		Title:            s.league + " " + s.year + " " + s.name,
		Status:           domain.StatusCompleted,
		Standings:        s.quals,
		TournamentPoints: make(map[int]map[int]float64),
		Games:            make(map[int][]domain.Game),
	}
	for i, w := range s.weeks {
		tid := s.id*100 + i
		rec.TournamentIDs = append(rec.TournamentIDs, tid)
		rec.TournamentPoints[tid] = w
	}
	for _, pid := range s.players {
		rec.Players = append(rec.Players, domain.Player{ID: pid, Name: playerName(pid)})
	}
	for _, g := range s.games {
		rec.Games[g.TournamentID] = append(rec.Games[g.TournamentID], g)
	}

	finals := standings.None()
	if s.finals != nil {
		finals = standings.Available([]int{s.id * 1000}, s.finals)
	}

	return Input{
		Season: season.Classified{
			ID:       s.id,
			Title:    rec.Title,
			Status:   rec.Status,
			Identity: season.Identity{Year: s.year, Name: s.name, League: s.league},
		},
		Record:    rec,
		Standings: standings.Resolve(rec, finals),
		Outcomes:  outcome.Aggregate(rec),
	}
}

func playerName(pid int) string {
	return map[int]string{1: "Ada", 2: "Bo", 3: "Cy", 4: "Di", 5: "Ed"}[pid]
}

func quals(ids ...int) []domain.QualifyingStanding {
	out := make([]domain.QualifyingStanding, 0, len(ids))
	for i, pid := range ids {
		out = append(out, domain.QualifyingStanding{PlayerID: pid, Position: i + 1, PointsAdjusted: float64(100 - 10*i)})
	}
	return out
}

func TestBuilder_RawPointsAndAverage(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2023", name: "Fall",
		players: []int{1},
		quals:   quals(1),
		weeks:   []map[int]float64{{1: 10}, {1: 35}, {1: 20}},
	}))

	e := b.Entries(season.GroupMFP)[1]
	require.NotNil(t, e)
	assert.Equal(t, 65.0, e.RawPoints)
	assert.Equal(t, 3, e.WeeksPlayed)
	assert.InDelta(t, 21.67, e.AveragePerWeek, 0.005)
	assert.Equal(t, 3, e.WeeklyWins)
}

func TestWeeklyWinner_TieGoesToLowestID(t *testing.T) {
	winner, ok := WeeklyWinner(map[int]float64{7: 30, 3: 30, 9: 12})
	require.True(t, ok)
	assert.Equal(t, 3, winner)

	_, ok = WeeklyWinner(nil)
	assert.False(t, ok)
}

func TestBuilder_IgnoresOtherLeagues(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueOther, year: "2023", name: "Fall",
		players: []int{1},
		quals:   quals(1),
		weeks:   []map[int]float64{{1: 10}},
	}))

	boards := b.Build()
	for _, g := range season.Groups {
		assert.Empty(t, boards.Groups[g].TotalPoints, g)
	}
}

func TestBuilder_WeeklyPointsOnlyForKnownPlayers(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2023", name: "Fall",
		players: []int{1},
		quals:   quals(1),
		weeks:   []map[int]float64{{1: 10, 2: 25}},
	}))

	entries := b.Entries(season.GroupMFP)
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, entries[1].WeeklyWins)
}

func TestBuilder_TopFinishes(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1, 2, 3, 4, 5},
		quals:   quals(1, 2, 3, 4, 5),
		finals:  []domain.FinalsResult{{PlayerID: 2, Position: 1}, {PlayerID: 1, Position: 2}, {PlayerID: 3, Position: 3}},
	}))
	b.Add(input(seasonSpec{
		id: 2, league: season.LeagueMFP, year: "2022", name: "Summer",
		players: []int{1, 2, 3},
		quals:   quals(1, 2, 3),
		finals:  []domain.FinalsResult{{PlayerID: 1, Position: 1}, {PlayerID: 3, Position: 2}, {PlayerID: 2, Position: 5}},
	}))

	board := b.Build().Groups[season.GroupMFP]

	var ids []int
	for _, e := range board.TopFinishes {
		ids = append(ids, e.PlayerID)
	}
	// 1 and 2 each have one win, 1 breaks the tie with a second place.
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
	assert.Equal(t, [4]int{1, 1, 0, 0}, board.TopFinishes[0].TopFinishes)
	assert.Equal(t, [4]int{0, 0, 0, 1}, board.TopFinishes[3].TopFinishes)

	for _, e := range board.TopFinishes {
		assert.Positive(t, e.TopFinishCount())
	}
}

func TestBuilder_BestSeasonThreshold(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1, 2, 3},
		quals: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 80},
			{PlayerID: 2, Position: 2, PointsAdjusted: 95},
			{PlayerID: 3, Position: 3, PointsAdjusted: 50},
		},
	}))

	boards := b.Build()
	assert.Equal(t, 80.0, boards.MinWinningScore)

	best := boards.Groups[season.GroupMFP].BestSeason
	require.Len(t, best, 2)
	assert.Equal(t, 2, best[0].PlayerID)
	assert.Equal(t, 95.0, best[0].BestSeason.Score)
	assert.Equal(t, 1, best[1].PlayerID)
}

func TestBuilder_BestSeasonRequiresTopTenFinish(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	var qs []domain.QualifyingStanding
	var ids []int
	for pid := 1; pid <= 11; pid++ {
		ids = append(ids, pid)
		qs = append(qs, domain.QualifyingStanding{PlayerID: pid, Position: pid, PointsAdjusted: 100})
	}
	b.Add(input(seasonSpec{id: 1, league: season.LeagueMFP, year: "2022", name: "Fall", players: ids, quals: qs}))

	best := b.Build().Groups[season.GroupMFP].BestSeason
	assert.Len(t, best, 10)
	for _, e := range best {
		assert.LessOrEqual(t, e.BestSeason.FinalPosition, 10)
	}
}

func TestBuilder_MostImproved(t *testing.T) {
	fiveWeeks := func(pts map[int]float64) []map[int]float64 {
		return []map[int]float64{pts, pts, pts, pts, pts}
	}
	cfg := DefaultConfig()
	b := NewBuilder(cfg)
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1, 2, 3},
		quals: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 50},
			{PlayerID: 2, Position: 2, PointsAdjusted: 40},
		},
		weeks: fiveWeeks(map[int]float64{1: 10, 2: 8}),
	}))
	b.Add(input(seasonSpec{
		id: 2, league: season.LeagueMFP, year: "2022", name: "Summer",
		players: []int{1, 2, 3},
		quals: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 75},
			{PlayerID: 2, Position: 2, PointsAdjusted: 30},
			{PlayerID: 3, Position: 3, PointsAdjusted: 20},
		},
		weeks: fiveWeeks(map[int]float64{1: 15, 2: 6, 3: 4}),
	}))

	improved := b.Build().Groups[season.GroupMFP].MostImproved
	require.Len(t, improved, 1)
	assert.Equal(t, 1, improved[0].PlayerID)
	assert.InDelta(t, 0.5, improved[0].Percent, 1e-9)
	assert.Equal(t, 1, improved[0].From.SeasonID)
	assert.Equal(t, 2, improved[0].To.SeasonID)
}

func TestBuilder_MostImprovedNeedsMinimumWeeks(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1}, quals: quals(1),
		weeks: []map[int]float64{{1: 10}, {1: 10}},
	}))
	b.Add(input(seasonSpec{
		id: 2, league: season.LeagueMFP, year: "2022", name: "Summer",
		players: []int{1}, quals: []domain.QualifyingStanding{{PlayerID: 1, Position: 1, PointsAdjusted: 500}},
		weeks: []map[int]float64{{1: 10}, {1: 10}},
	}))

	assert.Empty(t, b.Build().Groups[season.GroupMFP].MostImproved)
}

func TestBuilder_CombinedMergesGroups(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1, 2},
		quals: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 60},
			{PlayerID: 2, Position: 2, PointsAdjusted: 40},
		},
		weeks: []map[int]float64{{1: 20, 2: 10}},
		games: []domain.Game{
			{GameID: 1, TournamentID: 100, Arena: "Medieval Madness", PlayerIDs: []int{1, 2}, ResultPositions: []int{1, 2}},
		},
	}))
	b.Add(input(seasonSpec{
		id: 2, league: season.LeagueLadies, year: "2022", name: "Spring",
		players: []int{1, 3},
		quals: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 90},
			{PlayerID: 3, Position: 2, PointsAdjusted: 30},
		},
		weeks: []map[int]float64{{1: 30, 3: 5}, {1: 10}},
		games: []domain.Game{
			{GameID: 2, TournamentID: 200, Arena: "Twilight Zone", PlayerIDs: []int{1, 3}, ResultPositions: []int{1, 3}},
			{GameID: 3, TournamentID: 200, Arena: "Twilight Zone", PlayerIDs: []int{1, 3}, ResultPositions: []int{3, 1}},
		},
	}))

	combined := b.Entries(season.GroupCombined)
	require.Len(t, combined, 3)

	p1 := combined[1]
	assert.Equal(t, 150.0, p1.AdjustedPoints)
	assert.Equal(t, 60.0, p1.RawPoints)
	assert.Equal(t, 3, p1.WeeksPlayed)
	assert.Equal(t, 20.0, p1.AveragePerWeek)
	assert.Equal(t, 2, p1.SeasonsPlayed)
	assert.Equal(t, 3, p1.WeeklyWins)
	assert.Equal(t, 2, p1.GamesWon)
	assert.Equal(t, [4]int{2, 0, 0, 0}, p1.TopFinishes)
	require.NotNil(t, p1.BestSeason)
	assert.Equal(t, 90.0, p1.BestSeason.Score)
	assert.Equal(t, 2, p1.BestSeason.SeasonID)

	// per-group accumulators are untouched by the merge
	assert.Equal(t, 60.0, b.Entries(season.GroupMFP)[1].AdjustedPoints)
	assert.Equal(t, 90.0, b.Entries(season.GroupLadies)[1].AdjustedPoints)
}

func TestBuilder_TotalPointsTruncated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limit = 2
	b := NewBuilder(cfg)
	b.Add(input(seasonSpec{
		id: 1, league: season.LeagueMFP, year: "2022", name: "Spring",
		players: []int{1, 2, 3},
		quals:   quals(1, 2, 3),
		weeks:   []map[int]float64{{1: 5, 2: 15, 3: 15}},
	}))

	board := b.Build().Groups[season.GroupMFP]
	require.Len(t, board.TotalPoints, 2)
	assert.Equal(t, 2, board.TotalPoints[0].PlayerID)
	assert.Equal(t, 3, board.TotalPoints[1].PlayerID)
}
