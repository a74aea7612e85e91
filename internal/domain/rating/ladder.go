package rating

import (
	"math"
	"sort"
)

// Team ladder tuning.
const (
	LadderBaseRating = 1500.0
	ladderKFactor    = 32.0
)

// worstRank places a team behind every real rank without overflowing rank
// arithmetic.
const worstRank = math.MaxInt32

// Mode selects how the team ladder treats contest absence and negative
// deltas.
type Mode string

const (
	// ModeNormal excludes absent teams from a contest's comparisons.
	ModeNormal Mode = "normal"
	// ModeGainOnly clamps negative deltas to zero.
	ModeGainOnly Mode = "gain-only"
	// ModeZeroParticipation ranks absent teams last, so skipping a contest
	// costs rating.
	ModeZeroParticipation Mode = "zero-participation"
)

// ParseMode maps a stored mode string onto a Mode, defaulting to ModeNormal
// for anything unrecognized.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeGainOnly:
		return ModeGainOnly
	case ModeZeroParticipation:
		return ModeZeroParticipation
	default:
		return ModeNormal
	}
}

// TeamGroup is a registered team's identity: a stable ID, display name, and
// the alias strings (canonical name included) used to find the team in
// fuzzy external ranklists.
type TeamGroup struct {
	ID      string
	Name    string
	Aliases []string
}

// TeamStanding is one team's final row on the Elo ladder.
type TeamStanding struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
	Contests int     `json:"contests"`
	Rank     int     `json:"rank"`
}

type placement struct {
	group TeamGroup
	rank  int
}

// BuildStandings runs the pairwise Elo ladder over the supplied contests in
// order, every registered group seeded at LadderBaseRating. Contests are
// ranklists already condensed by BuildRanklist; unusable contests must be
// filtered out by the caller before this point.
func BuildStandings(contests [][]RankEntry, groups []TeamGroup, mode Mode) []TeamStanding {
	records := make(map[string]*TeamStanding, len(groups))
	for _, g := range groups {
		records[g.ID] = &TeamStanding{ID: g.ID, Name: g.Name, Rating: LadderBaseRating}
	}

	for _, entries := range contests {
		placements := make([]placement, 0, len(groups))
		matched := make(map[string]struct{}, len(groups))
		for _, g := range groups {
			rank, ok := MatchGroup(g, entries)
			if !ok {
				continue
			}
			placements = append(placements, placement{group: g, rank: rank})
			matched[g.ID] = struct{}{}
		}

		if len(placements) == 0 && mode != ModeZeroParticipation {
			continue
		}
		if mode == ModeZeroParticipation {
			for _, g := range groups {
				if _, ok := matched[g.ID]; !ok {
					placements = append(placements, placement{group: g, rank: worstRank})
				}
			}
		}
		sort.SliceStable(placements, func(i, j int) bool { return placements[i].rank < placements[j].rank })

		for _, p := range placements {
			records[p.group.ID].Contests++
		}

		for i := 0; i < len(placements); i++ {
			for j := i + 1; j < len(placements); j++ {
				a := records[placements[i].group.ID]
				b := records[placements[j].group.ID]

				expectedA := 1 / (1 + math.Pow(10, (b.Rating-a.Rating)/400))
				expectedB := 1 - expectedA

				scoreA, scoreB := 1.0, 0.0
				if placements[i].rank == placements[j].rank {
					scoreA, scoreB = 0.5, 0.5
					a.Draws++
					b.Draws++
				} else {
					a.Wins++
					b.Losses++
				}

				deltaA := ladderKFactor * (scoreA - expectedA)
				deltaB := ladderKFactor * (scoreB - expectedB)
				if mode == ModeGainOnly {
					deltaA = math.Max(deltaA, 0)
					deltaB = math.Max(deltaB, 0)
				}
				a.Rating += deltaA
				b.Rating += deltaB
			}
		}
	}

	standings := make([]TeamStanding, 0, len(records))
	for _, r := range records {
		standings = append(standings, *r)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Rating != standings[j].Rating {
			return standings[i].Rating > standings[j].Rating
		}
		return standings[i].Name < standings[j].Name
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// MatchGroup resolves a team group's best-matching ranklist entry by trying
// every group alias against every alias an entry exposes. When aliases hit
// several entries, the best (lowest) rank wins. Comparison is
// case-insensitive with non-alphanumerics stripped.
func MatchGroup(group TeamGroup, entries []RankEntry) (int, bool) {
	best := 0
	found := false
	for _, alias := range group.Aliases {
		target := normalizeAlias(alias)
		if target == "" {
			continue
		}
		for _, entry := range entries {
			for _, candidate := range entry.Aliases {
				if normalizeAlias(candidate) != target {
					continue
				}
				if !found || entry.Rank < best {
					best = entry.Rank
					found = true
				}
			}
		}
	}
	return best, found
}

// normalizeAlias lowercases and strips everything but letters and digits, so
// "Team_Alpha" and "team alpha" compare equal.
func normalizeAlias(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out)
}
