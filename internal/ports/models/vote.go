package models

import (
	"time"
)

// Vote records that a user voted on a poll. The (poll_id, user_id) unique
// index is the idempotency anchor: a second vote by the same user must fail
// on the constraint, never merge.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PollID    uint      `gorm:"column:poll_id;not null;uniqueIndex:uix_votes_pollid_userid,priority:1" json:"-"`
	UserID    string    `gorm:"column:user_id;size:255;not null;uniqueIndex:uix_votes_pollid_userid,priority:2" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`

	Selections []VoteSelection `gorm:"foreignKey:VoteID;constraint:OnDelete:CASCADE" json:"selections,omitempty"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// VoteSelection links a vote to one chosen option. RankOrder is 1-based and
// set only on ranked polls; single-choice selections keep it NULL.
type VoteSelection struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	VoteID       uint      `gorm:"column:vote_id;not null;uniqueIndex:uix_voteselections_voteid_optionid,priority:1;uniqueIndex:uix_voteselections_voteid_rank,priority:1" json:"-"`
	PollOptionID uint      `gorm:"column:poll_option_id;not null;uniqueIndex:uix_voteselections_voteid_optionid,priority:2" json:"poll_option_id"`
	RankOrder    *int      `gorm:"column:rank_order;uniqueIndex:uix_voteselections_voteid_rank,priority:2" json:"rank_order,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName specifies the table name for VoteSelection
func (VoteSelection) TableName() string {
	return "vote_selections"
}

// VoteRequest defines the input for casting a vote. Selections are option
// values in preference order; for ranked polls the order is the ranking.
type VoteRequest struct {
	Selections []string `json:"selections" binding:"required"`
}

// VoteResponse acknowledges a recorded vote.
type VoteResponse struct {
	PollID    string `json:"poll_id"`
	Completed bool   `json:"completed"`
}

// HasVotedResponse reports whether the caller already voted on a poll.
type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}
