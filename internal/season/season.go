package season

import (
	"strconv"

	"mfp-stats/internal/domain"
)

// Classified is a season with its parsed and, after CorrectYears, corrected
// identity.
type Classified struct {
	ID     int                 `json:"series_id"`
	Title  string              `json:"series_name"`
	Status domain.SeasonStatus `json:"status"`
	Identity
}

func ClassifyRecord(r *domain.SeasonRecord) Classified {
	return Classified{ID: r.ID, Title: r.Title, Status: r.Status, Identity: Classify(r.Title)}
}

// ClassifyAll classifies and corrects a batch of records; the result is sorted
// descending by id.
func ClassifyAll(records []domain.SeasonRecord, policy CorrectionPolicy) []Classified {
	out := make([]Classified, 0, len(records))
	for i := range records {
		out = append(out, ClassifyRecord(&records[i]))
	}
	return CorrectYears(out, policy)
}

// FinalsKey is the "{season-name} {year}" key of the finals mapping.
func (c Classified) FinalsKey() string {
	return c.Name + " " + c.Year
}

func (c Classified) Label() string {
	return c.Name + " " + c.Year
}

func (c Classified) Group() (Group, bool) {
	switch c.League {
	case LeagueMFP:
		return GroupMFP, true
	case LeagueLadies:
		return GroupLadies, true
	}
	return "", false
}

// Index maps season ids to classified seasons.
type Index map[int]Classified

func NewIndex(seasons []Classified) Index {
	idx := make(Index, len(seasons))
	for _, s := range seasons {
		idx[s.ID] = s
	}
	return idx
}

func (c Classified) yearInt() (int, bool) {
	y, err := strconv.Atoi(c.Year)
	if err != nil {
		return 0, false
	}
	return y, true
}
