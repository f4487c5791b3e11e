package outcome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfp-stats/internal/domain"
)

func game(id int, arena string, players []int, result []int) domain.Game {
	return domain.Game{GameID: id, Arena: arena, PlayerIDs: players, ResultPositions: result}
}

func TestAggregate_BucketsByParticipantCount(t *testing.T) {
	rec := &domain.SeasonRecord{
		Games: map[int][]domain.Game{
			10: {
				game(1, "Medieval Madness", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}),
				game(2, "Attack from Mars", []int{1, 2, 3}, []int{2, 1, 3}),
			},
			11: {
				game(3, "Medieval Madness", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}),
			},
		},
	}

	s := Aggregate(rec)

	require.Equal(t, 3, s.ValidGames)
	p1 := s.Player(1)
	assert.Equal(t, 3, p1.TotalGames)
	assert.Equal(t, 1, p1.Wins)
	assert.Equal(t, 1, p1.Placements[Placement{Rank: 2, Participants: 3}])
	assert.Equal(t, 0, p1.Placements[Placement{Rank: 2, Participants: 4}])
	assert.Equal(t, 1, p1.Placements[Placement{Rank: 4, Participants: 4}])

	p3 := s.Player(3)
	assert.Equal(t, 1, p3.Placements[Placement{Rank: 3, Participants: 4}])
	assert.Equal(t, 1, p3.Placements[Placement{Rank: 3, Participants: 3}])
	assert.Equal(t, 1, p3.Placements[Placement{Rank: 2, Participants: 4}])

	mm := s.ByMachine[1]["Medieval Madness"]
	assert.Equal(t, MachineStats{First: 1, TotalPlays: 2}, *mm)
}

func TestAggregate_SkipsMalformedGames(t *testing.T) {
	rec := &domain.SeasonRecord{
		Games: map[int][]domain.Game{
			10: {
				game(1, "Twilight Zone", []int{1, 2, 3}, nil),
				game(2, "Twilight Zone", []int{1, 2, 3}, []int{1, 1, 2}),
				game(3, "Twilight Zone", []int{1, 2, 3}, []int{9, 1, 2}),
				game(4, "Twilight Zone", []int{1, 2, 3}, []int{3, 1}),
			},
		},
	}

	s := Aggregate(rec)

	assert.Equal(t, 1, s.ValidGames)
	assert.Equal(t, 3, s.SkippedGames)
	assert.Equal(t, 1, s.Player(3).Wins)
	// player 2 is a participant absent from the sequence: not counted
	assert.Equal(t, 0, s.Player(2).TotalGames)
}

func TestAggregate_WinsEqualValidGames(t *testing.T) {
	rec := &domain.SeasonRecord{
		Games: map[int][]domain.Game{
			10: {
				game(1, "A", []int{1, 2, 3, 4}, []int{3, 1, 2, 4}),
				game(2, "B", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}),
				game(3, "C", []int{1, 2, 3}, []int{1, 2, 3}),
				game(4, "D", []int{1, 2}, nil),
			},
			12: {
				game(5, "A", []int{5, 6, 7}, []int{6, 7, 5}),
			},
		},
	}

	s := Aggregate(rec)

	wins := 0
	for _, ps := range s.ByPlayer {
		wins += ps.Wins
	}
	assert.Equal(t, s.ValidGames, wins)
	assert.Equal(t, 4, wins)
}

func TestPlacement_MarshalText(t *testing.T) {
	b, err := json.Marshal(map[Placement]int{{Rank: 2, Participants: 3}: 5, {Rank: 4, Participants: 4}: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"2nd_of_3":5,"4th_of_4":1}`, string(b))
}

func TestMergeMachines(t *testing.T) {
	a := Aggregate(&domain.SeasonRecord{Games: map[int][]domain.Game{
		1: {game(1, "X", []int{1, 2, 3}, []int{1, 2, 3})},
	}})
	b := Aggregate(&domain.SeasonRecord{Games: map[int][]domain.Game{
		2: {game(2, "X", []int{1, 2, 3}, []int{2, 1, 3})},
	}})

	machines := MergeMachines(a, b)
	assert.Equal(t, MachineStats{First: 1, Second: 1, TotalPlays: 2}, *machines[1]["X"])
}
