// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/memberscorner/models"
)

func opts(votes ...[]string) []models.Option {
	out := make([]models.Option, len(votes))
	for i, v := range votes {
		out[i] = models.Option{ID: i + 1, Text: string(rune('A' + i)), Votes: v}
	}
	return out
}

func votesOf(options []models.Option) [][]string {
	out := make([][]string, len(options))
	for i, opt := range options {
		out[i] = opt.Votes
	}
	return out
}

func TestApplyVote_Scenario(t *testing.T) {
	options := opts([]string{}, []string{"u1"})

	// u2 votes B
	options = ApplyVote(options, 2, "u2")
	assert.Equal(t, [][]string{{}, {"u1", "u2"}}, votesOf(options))
	assert.Equal(t, []int{0, 100}, Percentages(options))

	// u2 moves to A
	options = ApplyVote(options, 1, "u2")
	assert.Equal(t, [][]string{{"u2"}, {"u1"}}, votesOf(options))
	assert.Equal(t, []int{50, 50}, Percentages(options))
}

func TestApplyVote_SingleVotePerMember(t *testing.T) {
	tests := []struct {
		name   string
		start  []models.Option
		first  int
		second int
	}{
		{"fresh poll", opts([]string{}, []string{}, []string{}), 1, 3},
		{"others voted", opts([]string{"a"}, []string{"b", "c"}, []string{}), 2, 1},
		{"stale duplicate", opts([]string{"m"}, []string{"m"}, []string{}), 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyVote(ApplyVote(tt.start, tt.first, "m"), tt.second, "m")

			count := 0
			for _, opt := range got {
				for _, v := range opt.Votes {
					if v == "m" {
						count++
						assert.Equal(t, tt.second, opt.ID)
					}
				}
			}
			assert.Equal(t, 1, count, "member must appear exactly once")
		})
	}
}

func TestApplyVote_Idempotent(t *testing.T) {
	start := opts([]string{"a"}, []string{"b"}, []string{})

	once := ApplyVote(start, 3, "m")
	twice := ApplyVote(once, 3, "m")

	assert.Equal(t, once, twice)
}

func TestApplyVote_LeavesInputUntouched(t *testing.T) {
	start := opts([]string{"m"}, []string{})

	_ = ApplyVote(start, 2, "m")

	assert.Equal(t, []string{"m"}, start[0].Votes)
	assert.Empty(t, start[1].Votes)
}

func TestApplyVote_UnknownOptionOnlyRemoves(t *testing.T) {
	got := ApplyVote(opts([]string{"m"}, []string{}), 9, "m")
	assert.Equal(t, 0, TotalVotes(got))
}

func TestPercentages(t *testing.T) {
	tests := []struct {
		name    string
		options []models.Option
		want    []int
	}{
		{"no votes", opts([]string{}, []string{}), []int{0, 0}},
		{"nil votes", opts(nil, nil, nil), []int{0, 0, 0}},
		{"unanimous", opts([]string{"a", "b"}, []string{}), []int{100, 0}},
		{"thirds", opts([]string{"a"}, []string{"b"}, []string{"c"}), []int{33, 33, 33}},
		{"half rounds up", opts([]string{"a"}, []string{"b", "c", "d", "e", "f", "g", "h"}), []int{13, 88}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentages(tt.options)
			assert.Equal(t, tt.want, got)

			if TotalVotes(tt.options) > 0 {
				sum := 0
				for _, p := range got {
					sum += p
				}
				assert.InDelta(t, 100, sum, float64(len(got)), "percentages should sum to about 100")
			}
		})
	}
}

func TestVoteOf(t *testing.T) {
	options := opts([]string{"a"}, []string{"b", "m"})

	assert.Equal(t, 2, VoteOf(options, "m"))
	assert.Equal(t, 0, VoteOf(options, "nobody"))
	assert.Equal(t, 0, VoteOf(options, ""))
}

func TestNormalizeOptions(t *testing.T) {
	got := NormalizeOptions([]string{"A", "", "B", " "})

	require.Len(t, got, 2)
	assert.Equal(t, models.Option{ID: 1, Text: "A", Votes: []string{}}, got[0])
	assert.Equal(t, models.Option{ID: 2, Text: "B", Votes: []string{}}, got[1])

	trimmed := NormalizeOptions([]string{"  Hall  ", "\tPark"})
	assert.Equal(t, "Hall", trimmed[0].Text)
	assert.Equal(t, "Park", trimmed[1].Text)

	assert.Empty(t, NormalizeOptions(nil))
}
