package model

import "club_tracker/internal/domain/rating"

// StandingsRow is one handle's row on the public standings page, assembled
// from persisted snapshots only.
type StandingsRow struct {
	ID             string              `json:"id"`
	Handle         string              `json:"handle"`
	Name           string              `json:"name"`
	Roll           string              `json:"roll"`
	Batch          string              `json:"batch"`
	MaxRating      int                 `json:"maxRating"`
	SolvedCount    int                 `json:"solvedCount"`
	StandingRating int                 `json:"standingRating"`
	RecentStats    []rating.DailyPoint `json:"recentStats"`
}

// LadderResponse is the public team-ladder payload.
type LadderResponse struct {
	Contests  []Contest             `json:"contests"`
	Teams     []Team                `json:"teams"`
	Standings []rating.TeamStanding `json:"standings"`
	EloMode   string                `json:"eloMode"`
}
