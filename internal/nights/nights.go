package nights

import (
	"sort"

	"mfp-stats/internal/domain"
	"mfp-stats/internal/outcome"
	"mfp-stats/internal/season"
)

const (
	// PerfectScore is the maximum weekly point total.
	PerfectScore = 35.0

	// NightGames is the number of games a player plays in one tournament night.
	NightGames = 5
)

type Kind string

const (
	KindPerfect     Kind = "perfect"
	KindNearPerfect Kind = "near_perfect"
)

type Night struct {
	Kind         Kind    `json:"kind"`
	PlayerID     int     `json:"player_id"`
	Name         string  `json:"name"`
	SeasonID     int     `json:"series_id"`
	SeasonTitle  string  `json:"series_name"`
	Year         string  `json:"year"`
	SeasonName   string  `json:"season_name"`
	TournamentID int     `json:"tournament_id"`
	Week         int     `json:"week_num"`
	LeagueType   string  `json:"league_type"`
	Points       float64 `json:"points,omitempty"`
	Wins         int     `json:"wins,omitempty"`
	Games        int     `json:"games,omitempty"`
}

func newNight(kind Kind, s season.Classified, names map[int]string, playerID, tournamentID, week int) Night {
	name, ok := names[playerID]
	if !ok {
		name = domain.UnknownPlayerName
	}
	leagueType := season.GroupCombined.LeagueType()
	if g, ok := s.Group(); ok {
		leagueType = g.LeagueType()
	}
	return Night{
		Kind:         kind,
		PlayerID:     playerID,
		Name:         name,
		SeasonID:     s.ID,
		SeasonTitle:  s.Title,
		Year:         s.Year,
		SeasonName:   s.Name,
		TournamentID: tournamentID,
		Week:         week,
		LeagueType:   leagueType,
	}
}

// Perfect flags every weekly point total equal to PerfectScore.
func Perfect(s season.Classified, record *domain.SeasonRecord) []Night {
	names := record.PlayerNames()
	var out []Night
	for _, w := range record.Weeks() {
		for _, pid := range sortedKeys(w.Points) {
			if w.Points[pid] != PerfectScore {
				continue
			}
			n := newNight(KindPerfect, s, names, pid, w.TournamentID, w.Number)
			n.Points = w.Points[pid]
			out = append(out, n)
		}
	}
	return out
}

// NearPerfect flags players who won the first four of their five games in a
// tournament, ordered by (round, start time, game id), and did not win the
// fifth.
func NearPerfect(s season.Classified, record *domain.SeasonRecord) []Night {
	names := record.PlayerNames()
	var out []Night
	for _, tid := range record.GameTournamentIDs() {
		week := record.WeekNumber(tid)
		if week == 0 {
			continue
		}

		// games without a valid finishing sequence do not count toward the night
		byPlayer := make(map[int][]domain.Game)
		for _, g := range record.Games[tid] {
			if _, ok := outcome.Ranks(g); !ok {
				continue
			}
			for _, pid := range g.PlayerIDs {
				byPlayer[pid] = append(byPlayer[pid], g)
			}
		}

		for _, pid := range sortedKeys(byPlayer) {
			games := byPlayer[pid]
			if len(games) != NightGames {
				continue
			}
			sortGames(games)
			if !wonFirstLostLast(pid, games) {
				continue
			}
			n := newNight(KindNearPerfect, s, names, pid, tid, week)
			n.Wins = NightGames - 1
			n.Games = NightGames
			out = append(out, n)
		}
	}
	return out
}

func wonFirstLostLast(playerID int, games []domain.Game) bool {
	last := len(games) - 1
	for _, g := range games[:last] {
		if !won(playerID, g) {
			return false
		}
	}
	return !won(playerID, games[last])
}

func won(playerID int, g domain.Game) bool {
	return len(g.ResultPositions) > 0 && g.ResultPositions[0] == playerID
}

func sortGames(games []domain.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.RoundID != b.RoundID {
			return a.RoundID < b.RoundID
		}
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.Before(b.StartedAt)
		}
		return a.GameID < b.GameID
	})
}

// Sort orders nights by (season id, week), then player id.
func Sort(nights []Night) {
	sort.SliceStable(nights, func(i, j int) bool {
		a, b := nights[i], nights[j]
		if a.SeasonID != b.SeasonID {
			return a.SeasonID < b.SeasonID
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.PlayerID < b.PlayerID
	})
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
