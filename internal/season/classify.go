package season

import (
	"regexp"
	"strings"
)

const (
	YearUnknown = "N/A"
	NameUnknown = "N/A"

	LeagueMFP    = "MFPinball"
	LeagueLadies = "MFLadies Pinball"
	LeagueOther  = "Other"
)

// Identity is the (year, season-name, league) triple parsed from a title.
type Identity struct {
	Year   string `json:"year"`
	Name   string `json:"season_name"`
	League string `json:"league_name"`
}

type leagueRule struct {
	aliases []string
	league  string
}

// first matching rule wins
var leagueRules = []leagueRule{
	{aliases: []string{"MFPinball", "MFP"}, league: LeagueMFP},
	{aliases: []string{"Monterey Flipper Ladies Pinball", "MFLadies"}, league: LeagueLadies},
}

var seasonKeywords = []string{"Fall", "Summer", "Winter", "Spring"}

// generic cycle names, checked only when no calendar season matched
var cycleKeywords = []string{"League", "Season"}

var yearPattern = regexp.MustCompile(`\d{4}`)

// Classify parses a season title. It is total: any string yields a triple.
func Classify(title string) Identity {
	id := Identity{Year: YearUnknown, Name: NameUnknown, League: LeagueOther}

	rest := title
	if year := yearPattern.FindString(title); year != "" {
		id.Year = year
		rest = strings.TrimSpace(strings.ReplaceAll(title, year, ""))
	}

	for _, rule := range leagueRules {
		if containsAny(title, rule.aliases) {
			id.League = rule.league
			break
		}
	}

	if name, ok := firstContained(rest, seasonKeywords); ok {
		id.Name = name
	} else if name, ok := firstContained(rest, cycleKeywords); ok {
		id.Name = name
	}

	return id
}

func containsAny(s string, subs []string) bool {
	_, ok := firstContained(s, subs)
	return ok
}

func firstContained(s string, subs []string) (string, bool) {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}
