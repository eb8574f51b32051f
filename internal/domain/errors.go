package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPollType   = errors.New("poll type must be 'single' or 'ranked'")
	ErrTooFewOptions     = errors.New("poll requires at least two options")
	ErrEmptyOption       = errors.New("poll option value must not be empty")
	ErrDuplicateOption   = errors.New("poll option values must be unique")
	ErrEmptyMeetingID    = errors.New("meeting id must not be empty")
	ErrInvalidPollID     = errors.New("poll id must be a valid UUID")
	ErrPollNotFound      = errors.New("poll not found")
	ErrPollExists        = errors.New("poll with this id already exists")
	ErrDuplicateVote     = errors.New("user has already voted on this poll")
	ErrRosterUnavailable = errors.New("roster service unavailable")
)

// InvalidSelectionError rejects a ballot that references an option not on
// the poll or violates the poll type's cardinality rules. Value names the
// offending option when one exists.
type InvalidSelectionError struct {
	Value  string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid selection %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid selection: %s", e.Reason)
}

// IsInvalidSelection reports whether err is an InvalidSelectionError.
func IsInvalidSelection(err error) bool {
	var ise *InvalidSelectionError
	return errors.As(err, &ise)
}
