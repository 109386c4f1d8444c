package models

import "time"

// Poll status constants
const (
	StatusActive = "active"
)

// AnonymousAuthor is stored as the author name of every suggestion.
const AnonymousAuthor = "Anonymous"

// Collection names, scoped under the tenant namespace by the store backends.
const (
	CollectionPolls       = "polls"
	CollectionSuggestions = "suggestions"
	CollectionActivityLog = "activity_logs"
)

// Activity log actions
const (
	ActionCreatePoll       = "Created Poll"
	ActionDeletePoll       = "Deleted Poll"
	ActionDeleteSuggestion = "Deleted Suggestion"
)

// Session roles carried in X-Member-Roles
const (
	RoleCommittee = "committee"
	RoleOfficer   = "officer"
)

// Profile identifies the signed-in member.
type Profile struct {
	Name     string `json:"name"`
	MemberID string `json:"memberId"`
}

// Session is the caller context supplied by the host application. Profile is
// nil when nobody is signed in.
type Session struct {
	Profile         *Profile
	IsExpired       bool
	IsCommitteePlus bool
	IsOfficer       bool
}

// MemberID returns the profile's member id, or "" without a profile.
func (s Session) MemberID() string {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.MemberID
}

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type CastVoteRequest struct {
	OptionID int `json:"optionId"`
}

type SubmitSuggestionRequest struct {
	Text string `json:"text"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"pollId"`
}

type SubmitSuggestionResponse struct {
	SuggestionID string `json:"suggestionId"`
	Message      string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

// Option is embedded in its poll. Votes holds member ids and behaves as a set.
type Option struct {
	ID    int      `json:"id"`
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

type Suggestion struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ActivityLogEntry struct {
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Actor     string    `json:"actor"`
	ActorID   string    `json:"actorId"`
	Timestamp time.Time `json:"timestamp"`
}

// Board types (render-ready)

type OptionView struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Votes   int    `json:"votes"`
	Percent int    `json:"percent"`
}

type PollView struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	CreatedBy  string       `json:"createdBy"`
	CreatedAt  time.Time    `json:"createdAt"`
	Status     string       `json:"status"`
	Options    []OptionView `json:"options"`
	TotalVotes int          `json:"totalVotes"`
	MyVote     int          `json:"myVote,omitempty"` // 0 when the viewer has not voted
}

// SuggestionView never carries the author's id.
type SuggestionView struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BoardResponse struct {
	Polls       []PollView       `json:"polls"`
	Suggestions []SuggestionView `json:"suggestions"`
	CanManage   bool             `json:"canManage"`
	CanModerate bool             `json:"canModerate"`
	IsExpired   bool             `json:"isExpired"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
