package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types exchanged with the rest of the platform over the broker.
const (
	EventPollCreationRequested = "poll.creation.requested"
	EventPollCreated           = "poll.created"
	EventPollCompleted         = "poll.completed"
)

// Envelope is the wire format shared by every event on the bus:
// a typed header plus an opaque data payload.
type Envelope struct {
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	EventID      string          `json:"event_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Producer     string          `json:"producer"`
	Data         json.RawMessage `json:"data"`
}

// NewEnvelope wraps data in a versioned envelope with a fresh event id and
// a UTC timestamp.
func NewEnvelope(eventType, producer string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventType:    eventType,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Producer:     producer,
		Data:         raw,
	}, nil
}

// DecodeData unmarshals the envelope payload into out.
func (e Envelope) DecodeData(out any) error {
	return json.Unmarshal(e.Data, out)
}
