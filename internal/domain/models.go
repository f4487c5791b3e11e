package domain

import (
	"sort"
	"time"
)

type SeasonStatus string

const (
	StatusActive    SeasonStatus = "active"
	StatusUpcoming  SeasonStatus = "upcoming"
	StatusCompleted SeasonStatus = "completed"
)

type Player struct {
	ID     int
	Name   string
	IFPAID int // 0 when unknown
}

type QualifyingStanding struct {
	PlayerID       int
	Position       int
	PointsAdjusted float64
}

type Game struct {
	GameID       int
	TournamentID int
	RoundID      int
	Arena        string
	PlayerIDs    []int

	// index 0 is the winner
	ResultPositions []int
	StartedAt       time.Time
}

// SeasonRecord is one season as loaded from the upstream service, with every
// id normalized to int and every point value to float64.
type SeasonRecord struct {
	ID            int
	Title         string
	Status        SeasonStatus
	TournamentIDs []int
	Players       []Player
	Standings     []QualifyingStanding

	// tournament id -> player id -> weekly points
	TournamentPoints map[int]map[int]float64

	// tournament id -> games played in it
	Games map[int][]Game
}

type FinalsResult struct {
	PlayerID int
	Position int
}

// Week is one scored tournament of a season, numbered from 1 by its index in
// TournamentIDs.
type Week struct {
	Number       int
	TournamentID int
	Points       map[int]float64
}

// Weeks returns the scored tournaments in week order. Tournaments with points
// but no place in TournamentIDs have no week number and are left out.
func (s *SeasonRecord) Weeks() []Week {
	weeks := make([]Week, 0, len(s.TournamentIDs))
	for i, tid := range s.TournamentIDs {
		points, ok := s.TournamentPoints[tid]
		if !ok {
			continue
		}
		weeks = append(weeks, Week{Number: i + 1, TournamentID: tid, Points: points})
	}
	return weeks
}

// WeekNumber maps a tournament id to its 1-based week, 0 when the tournament
// is not part of the schedule.
func (s *SeasonRecord) WeekNumber(tournamentID int) int {
	for i, tid := range s.TournamentIDs {
		if tid == tournamentID {
			return i + 1
		}
	}
	return 0
}

type PlayerWeeks struct {
	RawPoints   float64
	WeeksPlayed int
	ByWeek      map[int]float64
}

func (p PlayerWeeks) Average() float64 {
	if p.WeeksPlayed == 0 {
		return 0
	}
	return p.RawPoints / float64(p.WeeksPlayed)
}

func (s *SeasonRecord) PlayerWeeks(playerID int) PlayerWeeks {
	out := PlayerWeeks{ByWeek: make(map[int]float64)}
	for _, w := range s.Weeks() {
		points, ok := w.Points[playerID]
		if !ok {
			continue
		}
		out.RawPoints += points
		out.WeeksPlayed++
		out.ByWeek[w.Number] = points
	}
	return out
}

func (s *SeasonRecord) Standing(playerID int) (QualifyingStanding, bool) {
	for _, st := range s.Standings {
		if st.PlayerID == playerID {
			return st, true
		}
	}
	return QualifyingStanding{}, false
}

func (s *SeasonRecord) PlayerNames() map[int]string {
	names := make(map[int]string, len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = p.Name
	}
	return names
}

// GameTournamentIDs lists the tournaments that have games, ascending.
func (s *SeasonRecord) GameTournamentIDs() []int {
	ids := make([]int, 0, len(s.Games))
	for tid := range s.Games {
		ids = append(ids, tid)
	}
	sort.Ints(ids)
	return ids
}

const UnknownPlayerName = "Unknown Player"
