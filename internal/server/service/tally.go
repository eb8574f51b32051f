package service

import (
	"context"

	"voting-service/internal/ports/models"
)

// tally computes per-option counts in display order, purely from current
// ledger state. Single-choice polls count every selection; ranked polls
// count first choices only.
func (s *PollService) tally(ctx context.Context, poll *models.Poll) ([]models.OptionTally, error) {
	options, err := s.polls.ListOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	counts, err := s.votes.SelectionCounts(ctx, poll.ID, poll.PollType == models.PollTypeRanked)
	if err != nil {
		return nil, err
	}
	tally := make([]models.OptionTally, 0, len(options))
	for _, option := range options {
		tally = append(tally, models.OptionTally{
			Value: option.OptionValue,
			Count: counts[option.ID],
		})
	}
	return tally, nil
}
