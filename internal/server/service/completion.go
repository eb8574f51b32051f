package service

import (
	"context"
	"encoding/json"

	"voting-service/internal/domain"
	"voting-service/internal/ports/models"
)

// detectCompletion runs after a successfully recorded vote. When the poll
// has a known expected-voter count and enough ballots are in, it attempts
// the one-way completed transition. MarkCompleted is a conditional update,
// so under racing last votes exactly one caller wins; only the winner
// snapshots the results and fires the completion notification.
//
// Everything in here is best-effort relative to the voter's request: the
// vote is already durable, so failures are logged and swallowed. A set
// completed flag is never rolled back.
func (s *PollService) detectCompletion(ctx context.Context, poll *models.Poll) bool {
	if poll.ExpectedVoters == nil {
		return false
	}
	total, err := s.votes.CountVotes(ctx, poll.ID)
	if err != nil {
		s.logger.Error("vote count for completion check failed",
			"poll_id", poll.PublicID, "error", err)
		return false
	}
	if total < int64(*poll.ExpectedVoters) {
		return false
	}

	flipped, err := s.polls.MarkCompleted(ctx, poll.ID)
	if err != nil {
		s.logger.Error("completion transition failed",
			"poll_id", poll.PublicID, "error", err)
		return false
	}
	if !flipped {
		// A concurrent vote already completed the poll and owns the
		// notification.
		return true
	}

	s.logger.Info("poll completed",
		"poll_id", poll.PublicID, "meeting_id", poll.MeetingID, "votes", total)
	s.notifyCompleted(ctx, poll, total)
	return true
}

// notifyCompleted publishes the completion event with a results snapshot
// and archives the snapshot to object storage. Both are best-effort.
func (s *PollService) notifyCompleted(ctx context.Context, poll *models.Poll, votesCast int64) {
	tally, err := s.tally(ctx, poll)
	if err != nil {
		s.logger.Error("results snapshot failed, completion notification skipped",
			"poll_id", poll.PublicID, "error", err)
		return
	}

	data := map[string]any{
		"poll_id":    poll.PublicID,
		"meeting_id": poll.MeetingID,
		"poll_type":  poll.PollType,
		"votes_cast": votesCast,
		"results":    tally,
	}
	s.publish(ctx, domain.EventPollCompleted, data)

	if s.archiver == nil {
		return
	}
	snapshot, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("results snapshot encoding failed", "poll_id", poll.PublicID, "error", err)
		return
	}
	archiveCtx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()
	if err := s.archiver.ArchiveResults(archiveCtx, poll.PublicID, snapshot); err != nil {
		s.logger.Error("results snapshot archive failed", "poll_id", poll.PublicID, "error", err)
	}
}
