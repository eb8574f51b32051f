package repository

import (
	"context"
	"errors"

	"voting-service/internal/domain"
	"voting-service/internal/ports/models"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// RecordVote inserts a vote and its selections atomically. Selections are
// validated against the poll's options inside the transaction; ranked polls
// get rank 1..k in submission order, single polls keep rank NULL. Duplicate
// votes are not pre-checked: the (poll_id, user_id) unique index is the
// arbiter, and its violation maps to ErrDuplicateVote.
func (r *VoteRepository) RecordVote(ctx context.Context, poll *models.Poll, userID string, selections []string) (*models.Vote, error) {
	if len(selections) == 0 {
		return nil, &domain.InvalidSelectionError{Reason: "at least one selection is required"}
	}
	if poll.PollType == models.PollTypeSingle && len(selections) > 1 {
		return nil, &domain.InvalidSelectionError{Reason: "single-choice poll accepts exactly one selection"}
	}

	var vote *models.Vote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var options []models.PollOption
		if err := tx.Where("poll_id = ?", poll.ID).Find(&options).Error; err != nil {
			return err
		}
		optionIDs := make(map[string]uint, len(options))
		for _, option := range options {
			optionIDs[option.OptionValue] = option.ID
		}
		for _, value := range selections {
			if _, ok := optionIDs[value]; !ok {
				return &domain.InvalidSelectionError{Value: value, Reason: "option is not on this poll"}
			}
		}

		v := &models.Vote{PollID: poll.ID, UserID: userID}
		if err := tx.Create(v).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateVote
			}
			return err
		}
		for i, value := range selections {
			selection := models.VoteSelection{
				VoteID:       v.ID,
				PollOptionID: optionIDs[value],
			}
			if poll.PollType == models.PollTypeRanked {
				rank := i + 1
				selection.RankOrder = &rank
			}
			if err := tx.Create(&selection).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return &domain.InvalidSelectionError{Value: value, Reason: "option selected more than once"}
				}
				return err
			}
			v.Selections = append(v.Selections, selection)
		}
		vote = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// HasVoted reports whether a vote exists for (poll, user).
func (r *VoteRepository) HasVoted(ctx context.Context, pollID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountVotes retrieves the number of ballots cast on a poll.
func (r *VoteRepository) CountVotes(ctx context.Context, pollID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}

// SelectionCounts returns the number of selections per option id. With
// firstChoiceOnly set, only rank-1 selections count (ranked tally).
func (r *VoteRepository) SelectionCounts(ctx context.Context, pollID uint, firstChoiceOnly bool) (map[uint]int64, error) {
	type row struct {
		PollOptionID uint
		N            int64
	}
	query := r.db.WithContext(ctx).
		Model(&models.VoteSelection{}).
		Select("vote_selections.poll_option_id, COUNT(*) AS n").
		Joins("JOIN votes ON votes.id = vote_selections.vote_id").
		Where("votes.poll_id = ?", pollID)
	if firstChoiceOnly {
		query = query.Where("vote_selections.rank_order = ?", 1)
	}
	var rows []row
	if err := query.Group("vote_selections.poll_option_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PollOptionID] = r.N
	}
	return counts, nil
}
