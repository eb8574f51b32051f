package models

import (
	"time"
)

// Poll types recognized by the service. The column carries a CHECK
// constraint so the database rejects anything else as well.
const (
	PollTypeSingle = "single"
	PollTypeRanked = "ranked"
)

// Poll is a single-question vote container owned by a meeting. The numeric
// id stays internal; callers only ever see the public UUID.
type Poll struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	PublicID       string    `gorm:"column:uuid;type:uuid;uniqueIndex:uix_polls_uuid;not null" json:"id"`
	MeetingID      string    `gorm:"column:meeting_id;size:255;not null;index" json:"meeting_id"`
	PollType       string    `gorm:"column:poll_type;size:50;not null;check:poll_type_check,poll_type IN ('single','ranked')" json:"poll_type"`
	ExpectedVoters *int      `gorm:"column:expected_voters" json:"expected_voters,omitempty"`
	Completed      bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt      time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`

	Options []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Votes   []Vote       `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

// PollOption is one choice on a poll. Value and display order are each
// unique within their poll, fixed at creation time.
type PollOption struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	PollID      uint      `gorm:"column:poll_id;not null;uniqueIndex:uix_polloption_pollid_value,priority:1;uniqueIndex:uix_polloption_pollid_order,priority:1" json:"-"`
	OptionValue string    `gorm:"column:option_value;size:255;not null;uniqueIndex:uix_polloption_pollid_value,priority:2" json:"value"`
	OptionOrder int       `gorm:"column:option_order;not null;uniqueIndex:uix_polloption_pollid_order,priority:2" json:"order"`
	CreatedAt   time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for PollOption
func (PollOption) TableName() string {
	return "poll_options"
}

// CreatePollRequest defines the input for creating a poll directly
type CreatePollRequest struct {
	MeetingID      string   `json:"meeting_id" binding:"required"`
	PollType       string   `json:"poll_type" binding:"required"`
	Options        []string `json:"options" binding:"required"`
	ExpectedVoters *int     `json:"expected_voters"`
}

// PollCreationRequested is the data payload of an inbound poll-creation
// event. PollID, ExpectedVoters and Origin are optional.
type PollCreationRequested struct {
	MeetingID      string   `json:"meeting_id"`
	PollType       string   `json:"poll_type"`
	Options        []string `json:"options"`
	PollID         string   `json:"poll_id,omitempty"`
	ExpectedVoters *int     `json:"expected_voters,omitempty"`
	Origin         string   `json:"origin,omitempty"`
}

// OptionTally is one row of a results tally, in display order.
type OptionTally struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// PollResults is the caller-facing results view. EligibleVoters falls back
// to VotesCast when the roster is unreachable, flagged by Approximate.
type PollResults struct {
	PollID         string        `json:"poll_id"`
	PollType       string        `json:"poll_type"`
	Completed      bool          `json:"completed"`
	Tally          []OptionTally `json:"tally"`
	VotesCast      int64         `json:"votes_cast"`
	EligibleVoters int           `json:"eligible_voters"`
	Approximate    bool          `json:"approximate"`
}
