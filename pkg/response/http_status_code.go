package response

import (
	"errors"
	"net/http"

	"voting-service/internal/domain"
)

// StatusCode maps a domain error onto the HTTP status surfaced to callers:
// validation failures are 400, unknown polls 404, bad ballots 422 and
// duplicate votes 409. Anything unrecognized is a 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateVote),
		errors.Is(err, domain.ErrPollExists):
		return http.StatusConflict
	case domain.IsInvalidSelection(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidPollType),
		errors.Is(err, domain.ErrTooFewOptions),
		errors.Is(err, domain.ErrEmptyOption),
		errors.Is(err, domain.ErrDuplicateOption),
		errors.Is(err, domain.ErrEmptyMeetingID),
		errors.Is(err, domain.ErrInvalidPollID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
