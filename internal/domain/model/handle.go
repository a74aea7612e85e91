package model

import "time"

// Handle is a registered Codeforces handle tracked by the club.
type Handle struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Batch     string    `json:"batch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HandleMeta is the last-refresh snapshot for a handle.
type HandleMeta struct {
	Handle         string `json:"handle"`
	MaxRating      int    `json:"max_rating"`
	TotalSolved    int    `json:"total_solved"`
	CurrentRating  int    `json:"current_rating"`
	LastUpdateDate string `json:"last_update_date"`
}

// RatingHistory is one persisted day of a handle's practice rating.
type RatingHistory struct {
	Handle string `json:"handle"`
	Date   string `json:"date"`
	Rating int    `json:"rating"`
}

// SolvedProblemRef is one rated solve stored in a day's bucket.
type SolvedProblemRef struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
}

// DailySolved is the persisted list of rated solves on one local day.
type DailySolved struct {
	Handle   string             `json:"handle"`
	Date     string             `json:"date"`
	Problems []SolvedProblemRef `json:"problems"`
}

// PendingProblem is a recent solve whose problem has no difficulty rating
// yet. It counts toward a day's pending tally until the judge rates the
// problem or the solve ages out of the relevance window.
type PendingProblem struct {
	Handle          string `json:"handle"`
	Date            string `json:"date"`
	ContestID       int    `json:"contestId"`
	Index           string `json:"index"`
	Name            string `json:"name"`
	SolvedAtSeconds int64  `json:"solvedAtSeconds"`
}
