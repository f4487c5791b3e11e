package season

import "fmt"

// Group is a leaderboard grouping of leagues.
type Group string

const (
	GroupMFP      Group = "mfp"
	GroupLadies   Group = "ladies"
	GroupCombined Group = "combined"
)

var Groups = []Group{GroupMFP, GroupLadies, GroupCombined}

func ParseGroup(s string) (Group, error) {
	for _, g := range Groups {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown league group %q", s)
}

// LeagueType is the short label attached to night records.
func (g Group) LeagueType() string {
	switch g {
	case GroupMFP:
		return "MFP"
	case GroupLadies:
		return "MFLP"
	}
	return "Combined"
}
