package domain

import (
	"strings"

	"voting-service/internal/ports/models"

	"github.com/google/uuid"
)

// ValidatePollCreation checks a poll-creation request against the rules the
// store enforces: a meeting id, a recognized poll type, at least two
// non-empty, distinct option values, and a well-formed public id when one
// is supplied.
func ValidatePollCreation(meetingID, pollType string, optionValues []string, publicID string) error {
	if strings.TrimSpace(meetingID) == "" {
		return ErrEmptyMeetingID
	}
	if pollType != models.PollTypeSingle && pollType != models.PollTypeRanked {
		return ErrInvalidPollType
	}
	if len(optionValues) < 2 {
		return ErrTooFewOptions
	}
	seen := make(map[string]struct{}, len(optionValues))
	for _, value := range optionValues {
		if strings.TrimSpace(value) == "" {
			return ErrEmptyOption
		}
		if _, dup := seen[value]; dup {
			return ErrDuplicateOption
		}
		seen[value] = struct{}{}
	}
	if publicID != "" {
		if _, err := uuid.Parse(publicID); err != nil {
			return ErrInvalidPollID
		}
	}
	return nil
}
