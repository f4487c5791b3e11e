package service

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"mfp-stats/internal/api"
	"mfp-stats/internal/domain"

	"github.com/rs/zerolog"
)

const unknownMachine = "Unknown Machine"

// ToSeasonRecord normalizes an upstream series and its games: string keys
// become int ids and point strings become float64. Entries that cannot be
// parsed are dropped.
func ToSeasonRecord(detail *api.SeriesDetail, games map[int][]api.Game, logger zerolog.Logger) domain.SeasonRecord {
	rec := domain.SeasonRecord{
		ID:               detail.SeriesID,
		Title:            detail.Name,
		Status:           domain.SeasonStatus(detail.Status),
		TournamentIDs:    append([]int(nil), detail.TournamentIDs...),
		TournamentPoints: make(map[int]map[int]float64, len(detail.TournamentPoints)),
		Games:            make(map[int][]domain.Game, len(games)),
	}

	for _, p := range detail.Players {
		player := domain.Player{ID: p.PlayerID, Name: p.Name}
		if p.IFPAID != nil {
			player.IFPAID = *p.IFPAID
		}
		rec.Players = append(rec.Players, player)
	}

	for _, st := range detail.Standings {
		points, ok := parsePoints(st.PointsAdjusted)
		if !ok && st.PointsAdjusted != "" {
			logger.Debug().Int("series_id", detail.SeriesID).Int("player_id", st.PlayerID).Str("points", string(st.PointsAdjusted)).Msg("unparseable adjusted points")
		}
		rec.Standings = append(rec.Standings, domain.QualifyingStanding{
			PlayerID:       st.PlayerID,
			Position:       st.Position,
			PointsAdjusted: points,
		})
	}

	for tidKey, byPlayer := range detail.TournamentPoints {
		tid, err := strconv.Atoi(tidKey)
		if err != nil {
			logger.Debug().Int("series_id", detail.SeriesID).Str("tournament", tidKey).Msg("skipping non-numeric tournament id")
			continue
		}
		points := make(map[int]float64, len(byPlayer))
		for pidKey, raw := range byPlayer {
			pid, err := strconv.Atoi(pidKey)
			if err != nil {
				continue
			}
			v, ok := parsePoints(raw)
			if !ok {
				logger.Debug().Int("tournament_id", tid).Int("player_id", pid).Str("points", string(raw)).Msg("skipping unparseable weekly points")
				continue
			}
			points[pid] = v
		}
		rec.TournamentPoints[tid] = points
	}

	for tid, list := range games {
		converted := make([]domain.Game, 0, len(list))
		for _, g := range list {
			converted = append(converted, toGame(tid, g))
		}
		sort.SliceStable(converted, func(i, j int) bool { return converted[i].GameID < converted[j].GameID })
		rec.Games[tid] = converted
	}

	return rec
}

func toGame(tournamentID int, g api.Game) domain.Game {
	out := domain.Game{
		GameID:          g.GameID,
		TournamentID:    tournamentID,
		RoundID:         g.RoundID,
		Arena:           unknownMachine,
		PlayerIDs:       append([]int(nil), g.PlayerIDs...),
		ResultPositions: append([]int(nil), g.ResultPositions...),
	}
	if g.Arena != nil && g.Arena.Name != "" {
		out.Arena = g.Arena.Name
	}
	if g.StartedAt != "" {
		if t, err := time.Parse(time.RFC3339, g.StartedAt); err == nil {
			out.StartedAt = t
		}
	}
	return out
}

func parsePoints(n json.Number) (float64, bool) {
	if n == "" {
		return 0, false
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}

func toFinalsResults(standings []api.Standing) []domain.FinalsResult {
	out := make([]domain.FinalsResult, 0, len(standings))
	for _, s := range standings {
		out = append(out, domain.FinalsResult{PlayerID: s.PlayerID, Position: s.Position})
	}
	return out
}
