package outcome

import (
	"fmt"

	"mfp-stats/internal/domain"
)

// Placement is a finishing rank bucket. Second and third place are split by
// the number of participants in the game; fourth place is always counted as
// fourth of four.
type Placement struct {
	Rank         int
	Participants int
}

func placementFor(rank, participants int) Placement {
	if rank >= 4 {
		return Placement{Rank: 4, Participants: 4}
	}
	return Placement{Rank: rank, Participants: participants}
}

func (p Placement) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%s_of_%d", ordinal(p.Rank), p.Participants)), nil
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}

type PlayerStats struct {
	TotalGames int               `json:"total_games"`
	Wins       int               `json:"first_place"`
	Placements map[Placement]int `json:"placements"`
}

func newPlayerStats() *PlayerStats {
	return &PlayerStats{Placements: make(map[Placement]int)}
}

type MachineStats struct {
	First      int `json:"first_place"`
	Second     int `json:"second_place"`
	Third      int `json:"third_place"`
	TotalPlays int `json:"total_plays"`
}

func (m *MachineStats) add(o *MachineStats) {
	m.First += o.First
	m.Second += o.Second
	m.Third += o.Third
	m.TotalPlays += o.TotalPlays
}

// Season holds the game outcome tallies of one season.
type Season struct {
	ByPlayer map[int]*PlayerStats

	// player id -> machine name -> stats
	ByMachine map[int]map[string]*MachineStats

	ValidGames   int
	SkippedGames int
}

func (s *Season) Player(playerID int) PlayerStats {
	if ps, ok := s.ByPlayer[playerID]; ok {
		return *ps
	}
	return PlayerStats{Placements: map[Placement]int{}}
}

// Aggregate reduces every game of a season to per-player and per-machine
// tallies. Games without a valid finishing sequence are skipped.
func Aggregate(record *domain.SeasonRecord) *Season {
	out := &Season{
		ByPlayer:  make(map[int]*PlayerStats),
		ByMachine: make(map[int]map[string]*MachineStats),
	}

	for _, tid := range record.GameTournamentIDs() {
		for _, g := range record.Games[tid] {
			rank, ok := Ranks(g)
			if !ok {
				out.SkippedGames++
				continue
			}
			out.ValidGames++
			out.addGame(g, rank)
		}
	}
	return out
}

func (s *Season) addGame(g domain.Game, rank map[int]int) {
	participants := len(g.PlayerIDs)
	for _, pid := range g.PlayerIDs {
		r, ok := rank[pid]
		if !ok {
			continue
		}

		ps, ok := s.ByPlayer[pid]
		if !ok {
			ps = newPlayerStats()
			s.ByPlayer[pid] = ps
		}
		ps.TotalGames++
		if r == 1 {
			ps.Wins++
		} else {
			ps.Placements[placementFor(r, participants)]++
		}

		machines, ok := s.ByMachine[pid]
		if !ok {
			machines = make(map[string]*MachineStats)
			s.ByMachine[pid] = machines
		}
		ms, ok := machines[g.Arena]
		if !ok {
			ms = &MachineStats{}
			machines[g.Arena] = ms
		}
		ms.TotalPlays++
		switch r {
		case 1:
			ms.First++
		case 2:
			ms.Second++
		case 3:
			ms.Third++
		}
	}
}

// Ranks maps each player in the finishing sequence to 1 + their index. A
// sequence is valid when it is non-empty, has no repeats and only names
// participants of the game.
func Ranks(g domain.Game) (map[int]int, bool) {
	if len(g.ResultPositions) == 0 {
		return nil, false
	}
	participants := make(map[int]bool, len(g.PlayerIDs))
	for _, pid := range g.PlayerIDs {
		participants[pid] = true
	}
	rank := make(map[int]int, len(g.ResultPositions))
	for i, pid := range g.ResultPositions {
		if !participants[pid] {
			return nil, false
		}
		if _, dup := rank[pid]; dup {
			return nil, false
		}
		rank[pid] = i + 1
	}
	return rank, true
}

// MergeMachines sums machine stats of several seasons per player.
func MergeMachines(seasons ...*Season) map[int]map[string]*MachineStats {
	out := make(map[int]map[string]*MachineStats)
	for _, s := range seasons {
		for pid, machines := range s.ByMachine {
			dst, ok := out[pid]
			if !ok {
				dst = make(map[string]*MachineStats)
				out[pid] = dst
			}
			for name, ms := range machines {
				acc, ok := dst[name]
				if !ok {
					acc = &MachineStats{}
					dst[name] = acc
				}
				acc.add(ms)
			}
		}
	}
	return out
}
