package report

import (
	"mfp-stats/internal/domain"
	"mfp-stats/internal/nights"
	"mfp-stats/internal/outcome"
	"mfp-stats/internal/season"
	"mfp-stats/internal/standings"
)

// Analysis is the per-season output of the engine. Analyses of different
// seasons are independent and may be computed concurrently.
type Analysis struct {
	Season      season.Classified
	Record      *domain.SeasonRecord
	Standings   standings.Table
	Outcomes    *outcome.Season
	Perfect     []nights.Night
	NearPerfect []nights.Night
}

func Analyze(s season.Classified, record *domain.SeasonRecord, finals standings.Finals) Analysis {
	return Analysis{
		Season:      s,
		Record:      record,
		Standings:   standings.Resolve(record, finals),
		Outcomes:    outcome.Aggregate(record),
		Perfect:     nights.Perfect(s, record),
		NearPerfect: nights.NearPerfect(s, record),
	}
}

func (a Analysis) name(playerID int) string {
	for _, p := range a.Record.Players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return domain.UnknownPlayerName
}
