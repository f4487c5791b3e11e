package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  Identity
	}{
		{"MFPinball 2023 Fall Season", Identity{Year: "2023", Name: "Fall", League: LeagueMFP}},
		{"MFP Spring 2019", Identity{Year: "2019", Name: "Spring", League: LeagueMFP}},
		{"MFLadies Pinball Winter 2024", Identity{Year: "2024", Name: "Winter", League: LeagueLadies}},
		{"Monterey Flipper Ladies Pinball Summer", Identity{Year: YearUnknown, Name: "Summer", League: LeagueLadies}},
		{"MFPinball 2021 League", Identity{Year: "2021", Name: "League", League: LeagueMFP}},
		{"MFLadies Season", Identity{Year: YearUnknown, Name: "Season", League: LeagueLadies}},
		{"Tuesday Night Strikes", Identity{Year: YearUnknown, Name: NameUnknown, League: LeagueOther}},
		{"", Identity{Year: YearUnknown, Name: NameUnknown, League: LeagueOther}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title))
		})
	}
}

func TestClassify_YearIsFirstFourDigitRun(t *testing.T) {
	assert.Equal(t, "2020", Classify("Pinball 2020 vs 2021").Year)
	assert.Equal(t, "1234", Classify("Week 12345").Year)
	assert.Equal(t, YearUnknown, Classify("Season 202").Year)
}

func TestClassify_CalendarSeasonBeatsCycleName(t *testing.T) {
	got := Classify("MFPinball League 2022 Summer Season")
	assert.Equal(t, "Summer", got.Name)
}

func TestClassify_YearRemovedBeforeSeasonMatch(t *testing.T) {
	// "2023" must not leak into the season-name search
	got := Classify("MFP 2023")
	assert.Equal(t, NameUnknown, got.Name)
	assert.Equal(t, LeagueMFP, got.League)
}
