package model

import "time"

// Team is a registered club team for the VJudge Elo ladder. Aliases hold the
// extra names the team appears under in external ranklists; the canonical
// name is always matched as well.
type Team struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases"`
	CreatedAt time.Time `json:"created_at"`
}

// Contest is a tracked VJudge contest. Disabled contests are kept but
// excluded from the ladder.
type Contest struct {
	ID        string    `json:"id"`
	ContestID int64     `json:"contestId"`
	Title     string    `json:"title"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// LadderConfig is the single-row ladder configuration.
type LadderConfig struct {
	Mode string `json:"eloMode"`
}
