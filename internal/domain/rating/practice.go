package rating

import (
	"math"
	"sort"
	"time"
)

// Practice rating tuning. A solve keeps full strength for fullWeightDays,
// then decays linearly until it stops counting after relevanceDays.
const (
	BaseRating     = 1000
	fullWeightDays = 5
	relevanceDays  = 30

	kFactorAbove = 32.0 // problem at or above the solver's known ceiling
	kFactorBelow = 12.0
)

// SolvedProblem is one accepted solve as reported by the judge. Rating 0
// means the problem has not been rated yet; such solves never score but are
// counted as pending while recent. Gym marks practice-area submissions,
// which are excluded everywhere.
type SolvedProblem struct {
	ContestID       int    `json:"contestId"`
	Index           string `json:"index"`
	Name            string `json:"name"`
	Rating          int    `json:"rating"`
	SolvedAtSeconds int64  `json:"solvedAtSeconds"`
	Gym             bool   `json:"-"`
}

// ProblemRef is the per-day view of a rated solve.
type ProblemRef struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
}

// DailyPoint is one day of a handle's rating trajectory.
type DailyPoint struct {
	Date         string       `json:"date"`
	FromRating   int          `json:"fromRating"`
	ToRating     int          `json:"toRating"`
	Delta        int          `json:"delta"`
	Problems     []ProblemRef `json:"problems"`
	PendingCount int          `json:"pendingCount"`
}

// Score computes the practice rating as of now. It is ScoreUpTo evaluated at
// the current instant.
func Score(maxRating int, solved []SolvedProblem) int {
	return ScoreUpTo(maxRating, solved, time.Now().Unix())
}

// ScoreUpTo computes the practice rating as of endSeconds, considering only
// solves in the trailing relevance window. Solves are applied in ascending
// time order; each delta depends on the rating accumulated so far, so the
// order is part of the contract.
func ScoreUpTo(maxRating int, solved []SolvedProblem, endSeconds int64) int {
	if maxRating < 0 {
		maxRating = 0
	}
	windowStart := endSeconds - relevanceDays*secondsPerDay

	scoped := make([]SolvedProblem, 0, len(solved))
	for _, p := range solved {
		if p.Gym || p.Rating <= 0 || p.SolvedAtSeconds <= 0 {
			continue
		}
		if p.SolvedAtSeconds < windowStart || p.SolvedAtSeconds > endSeconds {
			continue
		}
		scoped = append(scoped, p)
	}
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].SolvedAtSeconds < scoped[j].SolvedAtSeconds
	})

	current := float64(BaseRating)
	for _, p := range scoped {
		weight := timeWeight(float64(daysBetween(p.SolvedAtSeconds, endSeconds)))
		if weight <= 0 {
			continue
		}
		current += eloDelta(current, p.Rating, maxRating, weight)
	}
	return int(math.Round(current))
}

// RecentDays builds the rating trajectory for the trailing `days` local days
// ending at nowSeconds, oldest day first. Callers wanting newest-first
// output reverse the slice.
func RecentDays(maxRating int, solved []SolvedProblem, days int, nowSeconds int64) []DailyPoint {
	if days <= 0 {
		return nil
	}
	if maxRating < 0 {
		maxRating = 0
	}

	points := make([]DailyPoint, days)
	starts := make([]int64, days)
	for i := range points {
		start := StartOfDay(nowSeconds - int64(days-1-i)*secondsPerDay)
		starts[i] = start
		points[i] = DailyPoint{Date: DateKey(start), Problems: []ProblemRef{}}
	}

	byDate := make(map[string]int, days)
	for i, p := range points {
		byDate[p.Date] = i
	}

	for _, p := range solved {
		if p.Gym || p.SolvedAtSeconds <= 0 {
			continue
		}
		i, ok := byDate[DateKey(p.SolvedAtSeconds)]
		if !ok {
			continue
		}
		if p.Rating <= 0 {
			if daysBetween(p.SolvedAtSeconds, nowSeconds) <= relevanceDays {
				points[i].PendingCount++
			}
			continue
		}
		points[i].Problems = append(points[i].Problems, ProblemRef{
			ContestID: p.ContestID,
			Index:     p.Index,
			Name:      p.Name,
			Rating:    p.Rating,
		})
	}

	prev := ScoreUpTo(maxRating, solved, starts[0]-1)
	for i := range points {
		end := starts[i] + secondsPerDay - 1
		if end > nowSeconds {
			end = nowSeconds
		}
		points[i].FromRating = prev
		points[i].ToRating = ScoreUpTo(maxRating, solved, end)
		points[i].Delta = points[i].ToRating - points[i].FromRating
		prev = points[i].ToRating
	}
	return points
}

// daysBetween counts whole days from one instant to a later one, flooring
// toward negative infinity so a solve later the same day is zero days ago.
func daysBetween(fromSeconds, toSeconds int64) int {
	return int(floorDiv(toSeconds-fromSeconds, secondsPerDay))
}

// timeWeight maps a solve's age in days onto [0,1]: full strength up to
// fullWeightDays, linear decay to zero at relevanceDays.
func timeWeight(daysAgo float64) float64 {
	if daysAgo <= fullWeightDays {
		return 1
	}
	if daysAgo > relevanceDays {
		return 0
	}
	remaining := float64(relevanceDays) - daysAgo
	return math.Max(remaining/float64(relevanceDays-fullWeightDays), 0)
}

// ratingMultiplier rewards solves at or above the solver's max-ever judge
// rating (up to 2x) and discounts easier ones (down to 0.3x).
func ratingMultiplier(problemRating, maxRating int) float64 {
	if problemRating >= maxRating {
		return 1 + math.Min(float64(problemRating-maxRating)/1000, 1)
	}
	diff := math.Min(float64(maxRating-problemRating)/1000, 1)
	return 0.3 + (1-diff)*0.4
}

// eloDelta is the one-directional practice delta for a single solve. The
// expected-score deficit is always non-negative, so the practice rating
// never decreases.
func eloDelta(current float64, problemRating, maxRating int, weight float64) float64 {
	expected := 1 / (1 + math.Pow(10, (float64(problemRating)-current)/400))
	k := kFactorBelow
	if problemRating >= maxRating {
		k = kFactorAbove
	}
	return k * (1 - expected) * ratingMultiplier(problemRating, maxRating) * weight
}
