package service

import (
	"context"
	"fmt"
	"sync"

	"voting-service/internal/domain"
	"voting-service/internal/ports/models"

	"github.com/google/uuid"
)

// memoryStore implements PollStore and VoteLedger in memory while honoring
// the same constraints the Postgres schema enforces: unique (poll, user)
// votes and a conditional completed flip. That makes race behavior
// observable without a database.
type memoryStore struct {
	mu      sync.Mutex
	pollSeq uint
	voteSeq uint
	optSeq  uint
	polls   map[uint]*models.Poll
	byUUID  map[string]uint
	options map[uint][]models.PollOption
	votes   map[uint][]*models.Vote
	voted   map[string]struct{}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		polls:   make(map[uint]*models.Poll),
		byUUID:  make(map[string]uint),
		options: make(map[uint][]models.PollOption),
		votes:   make(map[uint][]*models.Vote),
		voted:   make(map[string]struct{}),
	}
}

func (m *memoryStore) CreatePoll(_ context.Context, meetingID, pollType string, optionValues []string, expectedVoters *int, publicID string) (*models.Poll, error) {
	if err := domain.ValidatePollCreation(meetingID, pollType, optionValues, publicID); err != nil {
		return nil, err
	}
	if publicID == "" {
		publicID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byUUID[publicID]; exists {
		return nil, domain.ErrPollExists
	}
	m.pollSeq++
	poll := &models.Poll{
		ID:             m.pollSeq,
		PublicID:       publicID,
		MeetingID:      meetingID,
		PollType:       pollType,
		ExpectedVoters: expectedVoters,
	}
	for i, value := range optionValues {
		m.optSeq++
		poll.Options = append(poll.Options, models.PollOption{
			ID:          m.optSeq,
			PollID:      poll.ID,
			OptionValue: value,
			OptionOrder: i,
		})
	}
	m.polls[poll.ID] = poll
	m.byUUID[poll.PublicID] = poll.ID
	m.options[poll.ID] = poll.Options
	out := *poll
	return &out, nil
}

func (m *memoryStore) GetPollByPublicID(_ context.Context, publicID string) (*models.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byUUID[publicID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	out := *m.polls[id]
	out.Options = nil
	return &out, nil
}

func (m *memoryStore) ListOptions(_ context.Context, pollID uint) ([]models.PollOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PollOption(nil), m.options[pollID]...), nil
}

func (m *memoryStore) MarkCompleted(_ context.Context, pollID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	poll, ok := m.polls[pollID]
	if !ok || poll.Completed {
		return false, nil
	}
	poll.Completed = true
	return true, nil
}

func (m *memoryStore) RecordVote(_ context.Context, poll *models.Poll, userID string, selections []string) (*models.Vote, error) {
	if len(selections) == 0 {
		return nil, &domain.InvalidSelectionError{Reason: "at least one selection is required"}
	}
	if poll.PollType == models.PollTypeSingle && len(selections) > 1 {
		return nil, &domain.InvalidSelectionError{Reason: "single-choice poll accepts exactly one selection"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	optionIDs := make(map[string]uint)
	for _, option := range m.options[poll.ID] {
		optionIDs[option.OptionValue] = option.ID
	}
	chosen := make(map[string]struct{})
	for _, value := range selections {
		if _, ok := optionIDs[value]; !ok {
			return nil, &domain.InvalidSelectionError{Value: value, Reason: "option is not on this poll"}
		}
		if _, dup := chosen[value]; dup {
			return nil, &domain.InvalidSelectionError{Value: value, Reason: "option selected more than once"}
		}
		chosen[value] = struct{}{}
	}

	key := fmt.Sprintf("%d|%s", poll.ID, userID)
	if _, exists := m.voted[key]; exists {
		return nil, domain.ErrDuplicateVote
	}
	m.voted[key] = struct{}{}

	m.voteSeq++
	vote := &models.Vote{ID: m.voteSeq, PollID: poll.ID, UserID: userID}
	for i, value := range selections {
		selection := models.VoteSelection{
			VoteID:       vote.ID,
			PollOptionID: optionIDs[value],
		}
		if poll.PollType == models.PollTypeRanked {
			rank := i + 1
			selection.RankOrder = &rank
		}
		vote.Selections = append(vote.Selections, selection)
	}
	m.votes[poll.ID] = append(m.votes[poll.ID], vote)
	return vote, nil
}

func (m *memoryStore) HasVoted(_ context.Context, pollID uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.voted[fmt.Sprintf("%d|%s", pollID, userID)]
	return ok, nil
}

func (m *memoryStore) CountVotes(_ context.Context, pollID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.votes[pollID])), nil
}

func (m *memoryStore) SelectionCounts(_ context.Context, pollID uint, firstChoiceOnly bool) (map[uint]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[uint]int64)
	for _, vote := range m.votes[pollID] {
		for _, selection := range vote.Selections {
			if firstChoiceOnly && (selection.RankOrder == nil || *selection.RankOrder != 1) {
				continue
			}
			counts[selection.PollOptionID]++
		}
	}
	return counts, nil
}

type publishedEvent struct {
	eventType string
	data      any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{eventType: eventType, data: data})
	return nil
}

func (p *fakePublisher) byType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeRoster struct {
	mu     sync.Mutex
	voters []string
	err    error
	calls  int
}

func (r *fakeRoster) EligibleVoters(context.Context, string, string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.voters, nil
}

type fakeArchiver struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	err       error
}

func newFakeArchiver() *fakeArchiver {
	return &fakeArchiver{snapshots: make(map[string][]byte)}
}

func (a *fakeArchiver) ArchiveResults(_ context.Context, pollPublicID string, snapshot []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.snapshots[pollPublicID] = snapshot
	return nil
}
