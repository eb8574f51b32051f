package repository

import (
	"context"
	"errors"

	"voting-service/internal/domain"
	"voting-service/internal/ports/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) *PollRepository {
	return &PollRepository{db: db}
}

// CreatePoll validates the creation request and persists the poll together
// with its options in a single transaction. Option order follows the input
// sequence. When publicID is empty a fresh UUID is assigned; a supplied id
// that already exists maps to ErrPollExists.
func (r *PollRepository) CreatePoll(ctx context.Context, meetingID, pollType string, optionValues []string, expectedVoters *int, publicID string) (*models.Poll, error) {
	if err := domain.ValidatePollCreation(meetingID, pollType, optionValues, publicID); err != nil {
		return nil, err
	}
	if publicID == "" {
		publicID = uuid.NewString()
	}

	poll := &models.Poll{
		PublicID:       publicID,
		MeetingID:      meetingID,
		PollType:       pollType,
		ExpectedVoters: expectedVoters,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrPollExists
			}
			return err
		}
		for i, value := range optionValues {
			option := models.PollOption{
				PollID:      poll.ID,
				OptionValue: value,
				OptionOrder: i,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
			poll.Options = append(poll.Options, option)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// GetPollByPublicID resolves a poll by its public UUID.
func (r *PollRepository) GetPollByPublicID(ctx context.Context, publicID string) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).Where("uuid = ?", publicID).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// ListOptions retrieves a poll's options in display order.
func (r *PollRepository) ListOptions(ctx context.Context, pollID uint) ([]models.PollOption, error) {
	var options []models.PollOption
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("option_order ASC").
		Find(&options).Error
	return options, err
}

// MarkCompleted flips the completed flag from false to true. The WHERE
// clause makes the flip conditional, so under a race exactly one caller
// sees true back; everyone else already finds the flag set.
func (r *PollRepository) MarkCompleted(ctx context.Context, pollID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Poll{}).
		Where("id = ? AND completed = ?", pollID, false).
		Update("completed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
