// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"math"
	"strings"

	"github.com/danielhkuo/memberscorner/models"
)

// ApplyVote returns a copy of options in which voterID has been removed from
// every option and then added to the option whose id is optionID. Applying
// the same vote twice yields the same result.
func ApplyVote(options []models.Option, optionID int, voterID string) []models.Option {
	out := make([]models.Option, len(options))
	for i, opt := range options {
		votes := make([]string, 0, len(opt.Votes)+1)
		for _, v := range opt.Votes {
			if v != voterID {
				votes = append(votes, v)
			}
		}
		if opt.ID == optionID {
			votes = append(votes, voterID)
		}
		out[i] = models.Option{ID: opt.ID, Text: opt.Text, Votes: votes}
	}
	return out
}

// TotalVotes sums the vote sets of all options.
func TotalVotes(options []models.Option) int {
	total := 0
	for _, opt := range options {
		total += len(opt.Votes)
	}
	return total
}

// Percentages returns round(100 * votes / total) per option, all zero when
// nobody has voted. Halves round up.
func Percentages(options []models.Option) []int {
	out := make([]int, len(options))
	total := TotalVotes(options)
	if total == 0 {
		return out
	}

	for i, opt := range options {
		out[i] = int(math.Round(100 * float64(len(opt.Votes)) / float64(total)))
	}
	return out
}

// VoteOf returns the id of the option holding voterID, or 0.
func VoteOf(options []models.Option, voterID string) int {
	if voterID == "" {
		return 0
	}
	for _, opt := range options {
		for _, v := range opt.Votes {
			if v == voterID {
				return opt.ID
			}
		}
	}
	return 0
}

func hasOption(options []models.Option, optionID int) bool {
	for _, opt := range options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// NormalizeOptions trims the option texts, drops blank ones and numbers the
// rest 1..N in the given order.
func NormalizeOptions(texts []string) []models.Option {
	options := make([]models.Option, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, models.Option{
			ID:    len(options) + 1,
			Text:  text,
			Votes: []string{},
		})
	}
	return options
}
