package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ladderGroups = []TeamGroup{
	{ID: "a", Name: "Alpha", Aliases: []string{"Alpha", "team_alpha"}},
	{ID: "b", Name: "Beta", Aliases: []string{"Beta"}},
	{ID: "c", Name: "Gamma", Aliases: []string{"Gamma"}},
}

func entry(teamID, rank int, aliases ...string) RankEntry {
	return RankEntry{TeamID: teamID, Rank: rank, Name: aliases[0], Aliases: aliases}
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeNormal, ParseMode("normal"))
	assert.Equal(t, ModeGainOnly, ParseMode("gain-only"))
	assert.Equal(t, ModeZeroParticipation, ParseMode("zero-participation"))
	assert.Equal(t, ModeNormal, ParseMode(""))
	assert.Equal(t, ModeNormal, ParseMode("bogus"))
}

func TestNormalizeAlias(t *testing.T) {
	assert.Equal(t, "teamalpha", normalizeAlias("Team_Alpha"))
	assert.Equal(t, "teamalpha", normalizeAlias("team alpha"))
	assert.Equal(t, "teamalpha", normalizeAlias("TEAM-ALPHA!"))
	assert.Equal(t, "", normalizeAlias("___"))
}

func TestMatchGroupBestRankWins(t *testing.T) {
	entries := []RankEntry{
		entry(1, 4, "team_alpha"),
		entry(2, 2, "Alpha"),
		entry(3, 1, "Beta"),
	}
	// both aliases match different entries; the lower rank is kept
	rank, ok := MatchGroup(ladderGroups[0], entries)
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = MatchGroup(ladderGroups[2], entries)
	assert.False(t, ok)
}

func TestBuildStandingsNoContests(t *testing.T) {
	standings := BuildStandings(nil, ladderGroups, ModeNormal)
	require.Len(t, standings, 3)
	// all tied at base rating, ordered by name, dense ranks
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"},
		[]string{standings[0].Name, standings[1].Name, standings[2].Name})
	for i, s := range standings {
		assert.Equal(t, LadderBaseRating, s.Rating)
		assert.Equal(t, i+1, s.Rank)
		assert.Equal(t, 0, s.Contests)
	}
}

func TestBuildStandingsZeroSumExchange(t *testing.T) {
	contests := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 2, "Beta"),
	}}
	standings := BuildStandings(contests, ladderGroups[:2], ModeNormal)
	require.Len(t, standings, 2)

	winner, loser := standings[0], standings[1]
	assert.Equal(t, "Alpha", winner.Name)
	assert.Greater(t, winner.Rating, LadderBaseRating)
	assert.Less(t, loser.Rating, LadderBaseRating)
	// equal base ratings exchange exactly K/2
	assert.InDelta(t, 16, winner.Rating-LadderBaseRating, 1e-9)
	assert.InDelta(t, winner.Rating-LadderBaseRating, LadderBaseRating-loser.Rating, 1e-9)

	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 1, winner.Contests)
	assert.Equal(t, 1, loser.Contests)
}

func TestBuildStandingsGainOnlyClampsLoser(t *testing.T) {
	contests := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 2, "Beta"),
	}}
	standings := BuildStandings(contests, ladderGroups[:2], ModeGainOnly)
	require.Len(t, standings, 2)
	assert.Greater(t, standings[0].Rating, LadderBaseRating)
	assert.Equal(t, LadderBaseRating, standings[1].Rating)
	assert.Equal(t, 1, standings[1].Losses, "the loss is still tallied")
}

func TestBuildStandingsDraw(t *testing.T) {
	contests := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 1, "Beta"),
	}}
	standings := BuildStandings(contests, ladderGroups[:2], ModeNormal)
	for _, s := range standings {
		assert.Equal(t, LadderBaseRating, s.Rating, "equal ratings draw to no change")
		assert.Equal(t, 1, s.Draws)
		assert.Equal(t, 0, s.Wins)
		assert.Equal(t, 0, s.Losses)
	}
}

func TestBuildStandingsNormalModeIgnoresAbsentTeams(t *testing.T) {
	contests := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 2, "Beta"),
	}}
	standings := BuildStandings(contests, ladderGroups, ModeNormal)
	require.Len(t, standings, 3)

	var gamma TeamStanding
	for _, s := range standings {
		if s.Name == "Gamma" {
			gamma = s
		}
	}
	assert.Equal(t, LadderBaseRating, gamma.Rating)
	assert.Equal(t, 0, gamma.Contests)
}

func TestBuildStandingsZeroParticipationPenalizesAbsence(t *testing.T) {
	contests := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 2, "Beta"),
	}}
	standings := BuildStandings(contests, ladderGroups, ModeZeroParticipation)
	require.Len(t, standings, 3)

	byName := map[string]TeamStanding{}
	for _, s := range standings {
		byName[s.Name] = s
	}
	assert.Less(t, byName["Gamma"].Rating, LadderBaseRating,
		"absent team is injected at the worst rank and loses")
	assert.Greater(t, byName["Alpha"].Rating, LadderBaseRating)
	assert.Equal(t, 2, byName["Gamma"].Losses)
	assert.Equal(t, 1, byName["Gamma"].Contests)
}

func TestBuildStandingsContestsCompound(t *testing.T) {
	oneContest := [][]RankEntry{{
		entry(1, 1, "Alpha"),
		entry(2, 2, "Beta"),
	}}
	twoContests := append(oneContest, oneContest[0])

	one := BuildStandings(oneContest, ladderGroups[:2], ModeNormal)
	two := BuildStandings(twoContests, ladderGroups[:2], ModeNormal)

	// the second identical result moves ratings further, but by less than
	// the first (the favorite is now expected to win)
	firstGain := one[0].Rating - LadderBaseRating
	secondGain := two[0].Rating - one[0].Rating
	assert.Greater(t, secondGain, 0.0)
	assert.Less(t, secondGain, firstGain)
	assert.Equal(t, 2, two[0].Contests)
}

func TestBuildStandingsSkipsEmptyRanklists(t *testing.T) {
	contests := [][]RankEntry{
		{},
		{entry(1, 1, "Alpha"), entry(2, 2, "Beta")},
	}
	standings := BuildStandings(contests, ladderGroups[:2], ModeNormal)
	assert.Equal(t, 1, standings[0].Contests)
}

func TestBuildStandingsInputUnchanged(t *testing.T) {
	groups := []TeamGroup{{ID: "a", Name: "Alpha", Aliases: []string{"Alpha"}}}
	contests := [][]RankEntry{{entry(1, 1, "Alpha")}}
	_ = BuildStandings(contests, groups, ModeZeroParticipation)
	assert.Equal(t, "Alpha", groups[0].Name)
	assert.False(t, math.IsNaN(BuildStandings(contests, groups, ModeNormal)[0].Rating))
}
