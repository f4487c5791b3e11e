package api

import (
	"bytes"
	"encoding/json"
)

type SeriesListResponse struct {
	Data []SeriesSummary `json:"data"`
}

type SeriesSummary struct {
	SeriesID int    `json:"seriesId"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

type SeriesDetailResponse struct {
	Data SeriesDetail `json:"data"`
}

type SeriesDetail struct {
	SeriesID         int              `json:"seriesId"`
	Name             string           `json:"name"`
	Status           string           `json:"status"`
	TournamentIDs    []int            `json:"tournamentIds"`
	Players          []Player         `json:"players"`
	Standings        []SeriesStanding `json:"standings"`
	TournamentPoints TournamentPoints `json:"tournamentPoints"`
}

type Player struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	IFPAID   *int   `json:"ifpaId"`
}

type SeriesStanding struct {
	PlayerID       int         `json:"playerId"`
	Position       int         `json:"position"`
	PointsAdjusted json.Number `json:"pointsAdjusted"`
}

// TournamentPoints maps tournament id -> player id -> points. The upstream
// encodes empty maps as [] and points as numeric strings.
type TournamentPoints map[string]map[string]json.Number

func (t *TournamentPoints) UnmarshalJSON(b []byte) error {
	var outer map[string]json.RawMessage
	if ok, err := decodeObject(b, &outer); err != nil || !ok {
		*t = TournamentPoints{}
		return err
	}

	out := make(TournamentPoints, len(outer))
	for tid, raw := range outer {
		var inner map[string]json.Number
		if _, err := decodeObject(raw, &inner); err != nil {
			return err
		}
		if inner == nil {
			inner = map[string]json.Number{}
		}
		out[tid] = inner
	}
	*t = out
	return nil
}

// decodeObject decodes b into v unless b is null or an empty array.
func decodeObject(b []byte, v any) (bool, error) {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return false, nil
	}
	return true, json.Unmarshal(trimmed, v)
}

type GamesResponse struct {
	Data []Game `json:"data"`
}

type Game struct {
	GameID          int    `json:"gameId"`
	RoundID         int    `json:"roundId"`
	TournamentID    int    `json:"tournamentId"`
	PlayerIDs       []int  `json:"playerIds"`
	ResultPositions []int  `json:"resultPositions"`
	StartedAt       string `json:"startedAt"`
	Arena           *Arena `json:"arena"`
}

type Arena struct {
	ArenaID int    `json:"arenaId"`
	Name    string `json:"name"`
}

type Standing struct {
	PlayerID int `json:"playerId"`
	Position int `json:"position"`
}
