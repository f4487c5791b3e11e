package leaderboard

type BestSeason struct {
	Score         float64 `json:"score"`
	SeasonID      int     `json:"series_id"`
	SeasonTitle   string  `json:"series_name"`
	Year          string  `json:"year"`
	SeasonName    string  `json:"season_name"`
	FinalPosition int     `json:"final_position"`
	HasFinal      bool    `json:"has_final"`
}

// Entry accumulates one player's totals within a league group. Counters only
// ever grow while seasons are folded in.
type Entry struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	IFPAID   int    `json:"ifpa_id,omitempty"`

	AdjustedPoints float64 `json:"total_adjusted_points"`
	RawPoints      float64 `json:"total_raw_points"`
	SeasonsPlayed  int     `json:"seasons_played_count"`
	WeeksPlayed    int     `json:"total_weeks_played"`
	WeeklyWins     int     `json:"weekly_wins"`
	GamesWon       int     `json:"games_won"`

	// index 0 counts first places
	TopFinishes [4]int `json:"top_4_finishes"`

	BestSeason     *BestSeason `json:"best_season_score,omitempty"`
	AveragePerWeek float64     `json:"average_points_per_week"`
}

func (e *Entry) TopFinishCount() int {
	n := 0
	for _, c := range e.TopFinishes {
		n += c
	}
	return n
}

func (e *Entry) bestScore() float64 {
	if e.BestSeason == nil {
		return 0
	}
	return e.BestSeason.Score
}

func (e *Entry) finalize() {
	e.AveragePerWeek = 0
	if e.WeeksPlayed > 0 {
		e.AveragePerWeek = e.RawPoints / float64(e.WeeksPlayed)
	}
}

func (e *Entry) clone() *Entry {
	c := *e
	if e.BestSeason != nil {
		best := *e.BestSeason
		c.BestSeason = &best
	}
	return &c
}

// merge adds o into e: counts and points are summed, the larger best season
// score is kept.
func (e *Entry) merge(o *Entry) {
	e.AdjustedPoints += o.AdjustedPoints
	e.RawPoints += o.RawPoints
	e.SeasonsPlayed += o.SeasonsPlayed
	e.WeeksPlayed += o.WeeksPlayed
	e.WeeklyWins += o.WeeklyWins
	e.GamesWon += o.GamesWon
	for i := range e.TopFinishes {
		e.TopFinishes[i] += o.TopFinishes[i]
	}
	if o.BestSeason != nil && o.BestSeason.Score > e.bestScore() {
		best := *o.BestSeason
		e.BestSeason = &best
	}
	if e.IFPAID == 0 {
		e.IFPAID = o.IFPAID
	}
}

// SeasonResult is one player's season as used by the most-improved board.
type SeasonResult struct {
	SeasonID       int     `json:"series_id"`
	SeasonTitle    string  `json:"series_name"`
	Year           string  `json:"year"`
	SeasonName     string  `json:"season_name"`
	AdjustedPoints float64 `json:"total_adjusted_points"`
	WeeksPlayed    int     `json:"weeks_played"`
}

type Improvement struct {
	PlayerID int          `json:"player_id"`
	Name     string       `json:"name"`
	Percent  float64      `json:"improvement_percent"`
	From     SeasonResult `json:"season1"`
	To       SeasonResult `json:"season2"`
}
