package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"voting-service/internal/domain"
	"voting-service/internal/ports/models"
)

const (
	// rosterRole selects which meeting participants count as voters.
	rosterRole = "voter"
	// collaboratorTimeout bounds roster and publisher calls so they never
	// stall the voter-facing path.
	collaboratorTimeout = 2 * time.Second
)

// PollService orchestrates the poll lifecycle: creation (direct or from an
// inbound event), vote submission with completion detection, and results
// queries. All state lives in the store; the service holds no counters.
type PollService struct {
	polls     PollStore
	votes     VoteLedger
	roster    RosterService
	publisher Publisher
	archiver  ResultsArchiver
	logger    *slog.Logger
}

// NewPollService wires the lifecycle controller. roster, publisher and
// archiver are optional collaborators; nil disables the respective side
// calls without changing voting behavior.
func NewPollService(polls PollStore, votes VoteLedger, roster RosterService, publisher Publisher, archiver ResultsArchiver, logger *slog.Logger) *PollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollService{
		polls:     polls,
		votes:     votes,
		roster:    roster,
		publisher: publisher,
		archiver:  archiver,
		logger:    logger,
	}
}

// CreatePoll creates a poll from a direct request.
func (s *PollService) CreatePoll(ctx context.Context, req models.CreatePollRequest) (*models.Poll, error) {
	poll, err := s.polls.CreatePoll(ctx, req.MeetingID, req.PollType, req.Options, req.ExpectedVoters, "")
	if err != nil {
		return nil, err
	}
	s.logger.Info("poll created",
		"poll_id", poll.PublicID,
		"meeting_id", poll.MeetingID,
		"poll_type", poll.PollType,
		"options", len(req.Options),
	)
	return poll, nil
}

// HandleEvent consumes one inbound event envelope. Only poll-creation
// requests are of interest; everything else is skipped. A returned error
// signals the transport to redeliver, so permanently invalid payloads are
// logged and dropped instead.
func (s *PollService) HandleEvent(ctx context.Context, env domain.Envelope) error {
	if env.EventType != domain.EventPollCreationRequested {
		return nil
	}

	var req models.PollCreationRequested
	if err := env.DecodeData(&req); err != nil {
		s.logger.Warn("dropping undecodable poll creation event",
			"event_id", env.EventID, "error", err)
		return nil
	}

	expected := req.ExpectedVoters
	if expected == nil {
		if voters, err := s.eligibleVoters(ctx, req.MeetingID); err != nil {
			s.logger.Warn("roster unavailable, poll will not auto-complete",
				"meeting_id", req.MeetingID, "error", err)
		} else {
			n := len(voters)
			expected = &n
		}
	}

	poll, err := s.polls.CreatePoll(ctx, req.MeetingID, req.PollType, req.Options, expected, req.PollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollExists) {
			// Redelivered event; the poll was created on an earlier attempt.
			s.logger.Info("poll already exists, event already handled",
				"event_id", env.EventID, "poll_id", req.PollID)
			return nil
		}
		if isValidationError(err) {
			s.logger.Warn("dropping invalid poll creation event",
				"event_id", env.EventID, "meeting_id", req.MeetingID, "error", err)
			return nil
		}
		return err
	}

	s.logger.Info("poll created from event",
		"poll_id", poll.PublicID,
		"meeting_id", poll.MeetingID,
		"event_id", env.EventID,
	)
	s.publish(ctx, domain.EventPollCreated, map[string]any{
		"poll_id":    poll.PublicID,
		"meeting_id": poll.MeetingID,
		"poll_type":  poll.PollType,
		"origin":     req.Origin,
	})
	return nil
}

// SubmitVote records a ballot and runs completion detection. The returned
// response reports whether the poll is completed as of this vote.
func (s *PollService) SubmitVote(ctx context.Context, pollPublicID, userID string, selections []string) (*models.VoteResponse, error) {
	poll, err := s.polls.GetPollByPublicID(ctx, pollPublicID)
	if err != nil {
		return nil, err
	}
	if _, err := s.votes.RecordVote(ctx, poll, userID, selections); err != nil {
		return nil, err
	}
	s.logger.Info("vote recorded", "poll_id", poll.PublicID, "user_id", userID)

	completed := poll.Completed || s.detectCompletion(ctx, poll)
	return &models.VoteResponse{PollID: poll.PublicID, Completed: completed}, nil
}

// HasVoted reports whether userID already voted on the poll.
func (s *PollService) HasVoted(ctx context.Context, pollPublicID, userID string) (bool, error) {
	poll, err := s.polls.GetPollByPublicID(ctx, pollPublicID)
	if err != nil {
		return false, err
	}
	return s.votes.HasVoted(ctx, poll.ID, userID)
}

// GetResults returns the live tally plus an eligible-voter count. When the
// roster is unreachable the count degrades to ballots cast, flagged as
// approximate, so the query always answers.
func (s *PollService) GetResults(ctx context.Context, pollPublicID string) (*models.PollResults, error) {
	poll, err := s.polls.GetPollByPublicID(ctx, pollPublicID)
	if err != nil {
		return nil, err
	}
	tally, err := s.tally(ctx, poll)
	if err != nil {
		return nil, err
	}
	votesCast, err := s.votes.CountVotes(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	eligible := int(votesCast)
	approximate := true
	if voters, err := s.eligibleVoters(ctx, poll.MeetingID); err != nil {
		s.logger.Warn("roster unavailable, falling back to ballots cast",
			"poll_id", poll.PublicID, "error", err)
	} else {
		eligible = len(voters)
		approximate = false
	}

	return &models.PollResults{
		PollID:         poll.PublicID,
		PollType:       poll.PollType,
		Completed:      poll.Completed,
		Tally:          tally,
		VotesCast:      votesCast,
		EligibleVoters: eligible,
		Approximate:    approximate,
	}, nil
}

func (s *PollService) eligibleVoters(ctx context.Context, meetingID string) ([]string, error) {
	if s.roster == nil {
		return nil, domain.ErrRosterUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()
	return s.roster.EligibleVoters(ctx, meetingID, rosterRole)
}

// publish sends an event best-effort: failures are logged, never returned.
func (s *PollService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("event publish failed", "event_type", eventType, "error", err)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyMeetingID) ||
		errors.Is(err, domain.ErrInvalidPollType) ||
		errors.Is(err, domain.ErrTooFewOptions) ||
		errors.Is(err, domain.ErrEmptyOption) ||
		errors.Is(err, domain.ErrDuplicateOption) ||
		errors.Is(err, domain.ErrInvalidPollID)
}
