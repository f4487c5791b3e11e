package db

import (
	"time"
)

type FinalsStanding struct {
	ID           string
	TournamentID int64
	PlayerID     int64
	Position     int64
	FetchedAt    time.Time
}

type SeriesCache struct {
	SeriesID  int64
	Title     string
	Status    string
	Payload   []byte
	FetchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TournamentGame struct {
	TournamentID int64
	SeriesID     int64
	Payload      []byte
	FetchedAt    time.Time
}
