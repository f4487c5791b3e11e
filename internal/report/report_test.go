package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfp-stats/internal/domain"
	"mfp-stats/internal/leaderboard"
	"mfp-stats/internal/nights"
	"mfp-stats/internal/season"
	"mfp-stats/internal/standings"
)

func fallRecord() *domain.SeasonRecord {
	return &domain.SeasonRecord{
		ID:            4100,
		Title:         "MFPinball 2023 Fall Season",
		Status:        domain.StatusCompleted,
		TournamentIDs: []int{11, 12, 13},
		Players: []domain.Player{
			{ID: 1, Name: "Ada"},
			{ID: 2, Name: "Bo"},
			{ID: 3, Name: "Cy"},
		},
		Standings: []domain.QualifyingStanding{
			{PlayerID: 1, Position: 1, PointsAdjusted: 65},
			{PlayerID: 2, Position: 2, PointsAdjusted: 40},
		},
		TournamentPoints: map[int]map[int]float64{
			11: {1: 10, 2: 20},
			12: {1: 35, 2: 10},
			13: {1: 20},
		},
		Games: map[int][]domain.Game{
			12: nightGames(12, 1, 2),
		},
	}
}

// nightGames has winner take games 1-4 and lose game 5 to other.
func nightGames(tid, winner, other int) []domain.Game {
	start := time.Date(2023, 10, 3, 19, 0, 0, 0, time.UTC)
	var games []domain.Game
	for i := 1; i <= nights.NightGames; i++ {
		result := []int{winner, other}
		if i == nights.NightGames {
			result = []int{other, winner}
		}
		games = append(games, domain.Game{
			GameID:          tid*10 + i,
			TournamentID:    tid,
			RoundID:         i,
			Arena:           "Medieval Madness",
			PlayerIDs:       []int{winner, other},
			ResultPositions: result,
			StartedAt:       start.Add(time.Duration(i) * 20 * time.Minute),
		})
	}
	return games
}

func ladiesRecord() *domain.SeasonRecord {
	return &domain.SeasonRecord{
		ID:            4200,
		Title:         "MFLadies 2024 Spring",
		Status:        domain.StatusActive,
		TournamentIDs: []int{21},
		Players:       []domain.Player{{ID: 1, Name: "Ada"}, {ID: 4, Name: "Di"}},
		Standings: []domain.QualifyingStanding{
			{PlayerID: 4, Position: 1, PointsAdjusted: 30},
			{PlayerID: 1, Position: 2, PointsAdjusted: 25},
		},
		TournamentPoints: map[int]map[int]float64{21: {1: 25, 4: 30}},
	}
}

func build(t *testing.T) *Report {
	t.Helper()
	records := []domain.SeasonRecord{*fallRecord(), *ladiesRecord(), {ID: 3000, Title: "Pinball Social Night"}}
	classified := season.ClassifyAll(records, season.DefaultCorrectionPolicy())
	idx := season.NewIndex(classified)

	var analyses []Analysis
	for i := range records {
		rec := &records[i]
		analyses = append(analyses, Analyze(idx[rec.ID], rec, standings.None()))
	}
	return Assemble(analyses, leaderboard.DefaultConfig())
}

func TestAssemble_SeasonsNewestFirst(t *testing.T) {
	r := build(t)

	var ids []int
	for _, s := range r.Seasons {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]int{4200, 4100, 3000}, ids); diff != "" {
		t.Errorf("season order mismatch (-want +got):\n%s", diff)
	}

	groups := r.SeasonsByGroup()
	assert.Len(t, groups["mfp"], 1)
	assert.Len(t, groups["ladies"], 1)
	assert.Len(t, groups[groupOther], 1)
	assert.Equal(t, []string{"2024", "2023"}, r.Years)
}

func TestAssemble_SeasonSummary(t *testing.T) {
	r := build(t)
	d, ok := r.Season(4100)
	require.True(t, ok)

	sum := d.Summary
	assert.Equal(t, "2023", sum.Year)
	assert.Equal(t, "Fall", sum.Name)
	assert.False(t, sum.HasFinals)
	assert.Equal(t, 6, sum.QualificationThreshold)
	assert.Equal(t, 0, sum.QualifiedCount)
	assert.Equal(t, 3, sum.PlayerCount)
	assert.Equal(t, []Placed{
		{Position: 1, PlayerRef: PlayerRef{PlayerID: 1, Name: "Ada"}},
		{Position: 2, PlayerRef: PlayerRef{PlayerID: 2, Name: "Bo"}},
	}, sum.TopFour)
}

func TestAssemble_SeasonDetail(t *testing.T) {
	r := build(t)
	d, ok := r.Season(4100)
	require.True(t, ok)
	require.Len(t, d.Players, 3)

	ada := d.Players[0]
	assert.Equal(t, 1, ada.PlayerID)
	assert.Equal(t, 65.0, ada.RawPoints)
	assert.Equal(t, 21.67, ada.AveragePerWeek)
	require.Len(t, ada.WeeklyScores, 3)
	assert.Equal(t, 35.0, *ada.WeeklyScores[1])
	assert.Equal(t, 4, ada.Games.Wins)

	bo := d.Players[1]
	assert.Nil(t, bo.WeeklyScores[2])

	// no standing and no weeks sorts last
	assert.Equal(t, 3, d.Players[2].PlayerID)
	assert.Zero(t, d.Players[2].FinalPosition)
}

func TestAssemble_Nights(t *testing.T) {
	r := build(t)

	require.Len(t, r.PerfectNights, 1)
	assert.Equal(t, 1, r.PerfectNights[0].PlayerID)
	assert.Equal(t, 2, r.PerfectNights[0].Week)

	require.Len(t, r.NearPerfectNights, 1)
	n := r.NearPerfectNights[0]
	assert.Equal(t, 1, n.PlayerID)
	assert.Equal(t, 12, n.TournamentID)
	assert.Equal(t, "MFP", n.LeagueType)
}

func TestAssemble_PlayerProfile(t *testing.T) {
	r := build(t)
	p, ok := r.Player(1)
	require.True(t, ok)

	require.Len(t, p.Seasons[season.GroupMFP], 1)
	require.Len(t, p.Seasons[season.GroupLadies], 1)

	mfp := p.Seasons[season.GroupMFP][0]
	assert.Equal(t, 35.0, mfp.BestWeek)
	assert.Equal(t, []float64{35, 20, 10}, mfp.TopScores)
	assert.Equal(t, 1, mfp.FinalPosition)

	assert.Equal(t, 4, p.Machines["Medieval Madness"].First)
	assert.Equal(t, 5, p.Machines["Medieval Madness"].TotalPlays)

	require.Len(t, p.Chart[season.GroupMFP], 1)
	assert.Equal(t, "Fall 2023", p.Chart[season.GroupMFP][0].Label)
}

func TestAssemble_Leaderboards(t *testing.T) {
	r := build(t)

	mfp, ok := r.Board(season.GroupMFP)
	require.True(t, ok)
	require.NotEmpty(t, mfp.TotalPoints)
	assert.Equal(t, 1, mfp.TotalPoints[0].PlayerID)
	assert.Equal(t, 65.0, mfp.TotalPoints[0].RawPoints)

	combined, ok := r.Board(season.GroupCombined)
	require.True(t, ok)
	assert.Equal(t, 90.0, combined.TotalPoints[0].RawPoints)
	assert.Equal(t, 4, combined.TotalPoints[0].GamesWon)
}

func TestReport_PlayersSortedByName(t *testing.T) {
	r := build(t)
	names := make([]string, 0)
	for _, p := range r.Players() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Ada", "Bo", "Cy", "Di"}, names)
}

func TestYears_LeagueSeasonsOnly(t *testing.T) {
	summary := func(group, year string) SeasonSummary {
		return SeasonSummary{Group: group, Classified: season.Classified{Identity: season.Identity{Year: year}}}
	}
	got := years([]SeasonSummary{
		summary("mfp", "2023"),
		summary(groupOther, "2019"),
		summary("ladies", "2024"),
		summary("mfp", season.YearUnknown),
		summary("ladies", "2023"),
	})
	assert.Equal(t, []string{"2024", "2023"}, got)
}
