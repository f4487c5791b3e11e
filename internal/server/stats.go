package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"mfp-stats/internal/constants"
	"mfp-stats/internal/metrics"
	"mfp-stats/internal/middleware"
	"mfp-stats/internal/nights"
	"mfp-stats/internal/report"
	"mfp-stats/internal/season"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
)

// ReportSource hands out the current report.
type ReportSource interface {
	Report(ctx context.Context) (*report.Report, error)
}

type StatsServer struct {
	reports ReportSource
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

var errNotFound = errors.New("not found")

func NewStatsServer(reports ReportSource, m *metrics.Metrics, logger zerolog.Logger) *StatsServer {
	return &StatsServer{reports: reports, metrics: m, logger: logger}
}

func (s *StatsServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/seasons", s.listSeasons)
	mux.HandleFunc("GET /api/seasons/{id}", s.getSeason)
	mux.HandleFunc("GET /api/players", s.searchPlayers)
	mux.HandleFunc("GET /api/players/{id}", s.getPlayer)
	mux.HandleFunc("GET /api/leaderboards", s.listLeaderboards)
	mux.HandleFunc("GET /api/leaderboards/{group}", s.getLeaderboard)
	mux.HandleFunc("GET /api/nights", s.listNights)
	mux.HandleFunc("GET /healthz", s.health)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

type seasonsResponse struct {
	Seasons map[string][]report.SeasonSummary `json:"seasons"`
	Years   []string                          `json:"years"`
}

func (s *StatsServer) listSeasons(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, seasonsResponse{Seasons: rep.SeasonsByGroup(), Years: rep.Years})
}

func (s *StatsServer) getSeason(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid season id"))
		return
	}
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	detail, found := rep.Season(id)
	if !found {
		s.writeError(w, r, http.StatusNotFound, errNotFound)
		return
	}
	s.writeJSON(w, r, http.StatusOK, detail)
}

// searchPlayers ranks player names against q by edit distance. An empty
// query lists every player.
func (s *StatsServer) searchPlayers(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	players := rep.Players()

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeJSON(w, r, http.StatusOK, players)
		return
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Stable(ranks)

	matches := make([]report.PlayerRef, 0, constants.SearchSuggestionLimit)
	for _, rank := range ranks {
		if len(matches) == constants.SearchSuggestionLimit {
			break
		}
		matches = append(matches, players[rank.OriginalIndex])
	}
	s.writeJSON(w, r, http.StatusOK, matches)
}

func (s *StatsServer) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid player id"))
		return
	}
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	profile, found := rep.Player(id)
	if !found {
		s.writeError(w, r, http.StatusNotFound, errNotFound)
		return
	}
	s.writeJSON(w, r, http.StatusOK, profile)
}

func (s *StatsServer) listLeaderboards(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, rep.Leaderboards)
}

func (s *StatsServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	g, err := season.ParseGroup(r.PathValue("group"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	board, found := rep.Board(g)
	if !found {
		s.writeError(w, r, http.StatusNotFound, errNotFound)
		return
	}
	s.writeJSON(w, r, http.StatusOK, board)
}

type nightsResponse struct {
	Perfect     []nights.Night `json:"perfect_nights"`
	NearPerfect []nights.Night `json:"near_perfect_nights"`
}

func (s *StatsServer) listNights(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, nightsResponse{Perfect: rep.PerfectNights, NearPerfect: rep.NearPerfectNights})
}

func (s *StatsServer) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *StatsServer) report(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	rep, err := s.reports.Report(ctx)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	return rep, true
}

func (s *StatsServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

func (s *StatsServer) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
}
