package season

const (
	qualificationCutoffYear = 2022
	qualificationCutoffName = "Winter"

	weeksBeforeCutoff = 5
	weeksFromCutoff   = 6
)

var seasonOrder = map[string]int{
	"Winter": 0,
	"Spring": 1,
	"Summer": 2,
	"Fall":   3,
	"League": 4,
	"Season": 5,
}

// QualificationThreshold is the number of weeks a player must play to
// qualify for the season. Winter 2022 raised it from 5 to 6.
func (c Classified) QualificationThreshold() int {
	year, ok := c.yearInt()
	if !ok {
		return weeksBeforeCutoff
	}
	switch {
	case year > qualificationCutoffYear:
		return weeksFromCutoff
	case year < qualificationCutoffYear:
		return weeksBeforeCutoff
	}
	rank, ok := seasonOrder[c.Name]
	if !ok {
		return weeksFromCutoff
	}
	if rank >= seasonOrder[qualificationCutoffName] {
		return weeksFromCutoff
	}
	return weeksBeforeCutoff
}
