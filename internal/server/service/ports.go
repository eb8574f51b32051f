package service

import (
	"context"

	"voting-service/internal/ports/models"
)

// PollStore is the durable record of polls and their options.
type PollStore interface {
	CreatePoll(ctx context.Context, meetingID, pollType string, optionValues []string, expectedVoters *int, publicID string) (*models.Poll, error)
	GetPollByPublicID(ctx context.Context, publicID string) (*models.Poll, error)
	ListOptions(ctx context.Context, pollID uint) ([]models.PollOption, error)
	MarkCompleted(ctx context.Context, pollID uint) (bool, error)
}

// VoteLedger is the append-mostly record of ballots and their selections.
type VoteLedger interface {
	RecordVote(ctx context.Context, poll *models.Poll, userID string, selections []string) (*models.Vote, error)
	HasVoted(ctx context.Context, pollID uint, userID string) (bool, error)
	CountVotes(ctx context.Context, pollID uint) (int64, error)
	SelectionCounts(ctx context.Context, pollID uint, firstChoiceOnly bool) (map[uint]int64, error)
}

// Publisher emits events to the rest of the platform, at-least-once and
// best-effort from this service's point of view.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// RosterService answers which users may vote in a meeting. It may be slow
// or down; callers bound it with a timeout and treat failure as "unknown".
type RosterService interface {
	EligibleVoters(ctx context.Context, meetingID, role string) ([]string, error)
}

// ResultsArchiver stores a completed poll's results snapshot out of band.
type ResultsArchiver interface {
	ArchiveResults(ctx context.Context, pollPublicID string, snapshot []byte) error
}
