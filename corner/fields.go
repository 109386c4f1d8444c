// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

// Field names match the json tags in models so documents decode with DataTo.

func pollFields(question string, options []models.Option, createdBy string) store.Fields {
	return store.Fields{
		"question":  question,
		"options":   optionFields(options),
		"createdBy": createdBy,
		"createdAt": store.ServerTimestamp,
		"status":    models.StatusActive,
	}
}

func optionFields(options []models.Option) []map[string]any {
	out := make([]map[string]any, len(options))
	for i, opt := range options {
		votes := opt.Votes
		if votes == nil {
			votes = []string{}
		}
		out[i] = map[string]any{
			"id":    opt.ID,
			"text":  opt.Text,
			"votes": votes,
		}
	}
	return out
}

func suggestionFields(text, authorID string) store.Fields {
	return store.Fields{
		"text":       text,
		"authorId":   authorID,
		"authorName": models.AnonymousAuthor,
		"createdAt":  store.ServerTimestamp,
	}
}

func activityFields(action, details string, profile *models.Profile) store.Fields {
	return store.Fields{
		"action":    action,
		"details":   details,
		"actor":     profile.Name,
		"actorId":   profile.MemberID,
		"timestamp": store.ServerTimestamp,
	}
}
