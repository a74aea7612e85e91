package rating

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Wrong attempts on an eventually-solved problem cost 20 minutes each,
// standard ICPC penalty scoring.
const penaltyPerWrongSeconds = 20 * 60

// ErrNoRankData signals that a contest payload had no usable
// participants/submissions shape. It is distinct from a valid contest with
// zero competitors, which yields an empty ranklist and no error.
var ErrNoRankData = errors.New("no usable rank data")

// RawParticipant is one entry of a contest's participants table.
type RawParticipant struct {
	Username    string
	DisplayName string
}

// RawSubmission is one row of a contest's flat submission log.
type RawSubmission struct {
	TeamID    int
	ProblemID int
	Accepted  bool
	AtSeconds int64
}

// RawContest is a contest payload after the transport layer has turned the
// source's positional tuples into named fields. A nil Participants map or
// nil Submissions slice means the source did not return that section.
type RawContest struct {
	Title         string
	LengthSeconds int64
	BeginSeconds  int64
	EndSeconds    int64
	Participants  map[int]RawParticipant
	Submissions   []RawSubmission
}

// RankEntry is one team's final row in a contest ranklist. Teams with equal
// solved count and penalty share a rank; the next distinct pair jumps to
// position+1 (competition ranking, gaps after ties).
type RankEntry struct {
	TeamID      int      `json:"team_id"`
	Name        string   `json:"team_name"`
	Rank        int      `json:"rank"`
	Solved      int      `json:"solved"`
	Penalty     int64    `json:"penalty"`
	Submissions int      `json:"submissions"`
	Aliases     []string `json:"aliases"`
}

type rankProblem struct {
	wrong  int
	solved bool
}

type rankTeam struct {
	entry     RankEntry
	attempted bool
	problems  map[int]*rankProblem
}

// BuildRanklist condenses a raw contest payload into a ranked list of team
// summaries. Submissions after the contest's effective duration are dropped
// so late practice runs do not bleed into official results.
func BuildRanklist(raw *RawContest) ([]RankEntry, error) {
	if raw == nil || raw.Participants == nil || raw.Submissions == nil {
		return nil, ErrNoRankData
	}

	length := contestLength(raw)

	teams := make(map[int]*rankTeam, len(raw.Participants))
	for id, p := range raw.Participants {
		name := p.DisplayName
		if name == "" {
			name = p.Username
		}
		if name == "" {
			name = fmt.Sprintf("Team %d", id)
		}
		teams[id] = &rankTeam{
			entry: RankEntry{
				TeamID:  id,
				Name:    name,
				Aliases: teamAliases(name, p.Username),
			},
			problems: make(map[int]*rankProblem),
		}
	}

	subs := make([]RawSubmission, 0, len(raw.Submissions))
	for _, s := range raw.Submissions {
		if length > 0 && s.AtSeconds > length {
			continue
		}
		subs = append(subs, s)
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].AtSeconds < subs[j].AtSeconds })

	for _, s := range subs {
		team, ok := teams[s.TeamID]
		if !ok {
			continue
		}
		team.attempted = true
		team.entry.Submissions++
		prob := team.problems[s.ProblemID]
		if prob == nil {
			prob = &rankProblem{}
			team.problems[s.ProblemID] = prob
		}
		if prob.solved {
			continue
		}
		if s.Accepted {
			prob.solved = true
			team.entry.Solved++
			team.entry.Penalty += s.AtSeconds + int64(prob.wrong)*penaltyPerWrongSeconds
		} else {
			prob.wrong++
		}
	}

	ranked := make([]RankEntry, 0, len(teams))
	for _, team := range teams {
		if !team.attempted && team.entry.Solved == 0 {
			continue
		}
		ranked = append(ranked, team.entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Solved != ranked[j].Solved {
			return ranked[i].Solved > ranked[j].Solved
		}
		return ranked[i].Penalty < ranked[j].Penalty
	})

	currentRank := 0
	for i := range ranked {
		if i == 0 || ranked[i].Solved != ranked[i-1].Solved || ranked[i].Penalty != ranked[i-1].Penalty {
			currentRank = i + 1
		}
		ranked[i].Rank = currentRank
	}
	return ranked, nil
}

// contestLength resolves the effective contest duration in seconds; 0 means
// unbounded.
func contestLength(raw *RawContest) int64 {
	if raw.LengthSeconds > 0 {
		return raw.LengthSeconds
	}
	if raw.BeginSeconds > 0 && raw.EndSeconds > raw.BeginSeconds {
		return raw.EndSeconds - raw.BeginSeconds
	}
	return 0
}

// teamAliases collects the matchable names a ranklist entry exposes: display
// name, username, and underscore-to-space variants of both.
func teamAliases(displayName, username string) []string {
	seen := make(map[string]struct{}, 4)
	aliases := make([]string, 0, 4)
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		aliases = append(aliases, v)
	}
	add(displayName)
	add(username)
	add(strings.ReplaceAll(displayName, "_", " "))
	add(strings.ReplaceAll(username, "_", " "))
	return aliases
}
