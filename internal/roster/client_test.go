package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voting-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleVoters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings/m1/voters", r.URL.Path)
		assert.Equal(t, "voter", r.URL.Query().Get("role"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voters":["alice","bob","carol"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, time.Minute, nil)
	voters, err := client.EligibleVoters(context.Background(), "m1", "voter")

	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, voters)
}

func TestEligibleVotersEmptyRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"voters":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, time.Minute, nil)
	voters, err := client.EligibleVoters(context.Background(), "m1", "voter")

	require.NoError(t, err)
	assert.Empty(t, voters)
}

func TestEligibleVotersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, time.Minute, nil)
	_, err := client.EligibleVoters(context.Background(), "m1", "voter")

	assert.ErrorIs(t, err, domain.ErrRosterUnavailable)
}

func TestEligibleVotersTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"voters":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond, nil, time.Minute, nil)
	_, err := client.EligibleVoters(context.Background(), "m1", "voter")

	assert.ErrorIs(t, err, domain.ErrRosterUnavailable)
}

func TestEligibleVotersUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nil, time.Minute, nil)
	_, err := client.EligibleVoters(context.Background(), "m1", "voter")

	assert.ErrorIs(t, err, domain.ErrRosterUnavailable)
}

func TestEligibleVotersMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, time.Minute, nil)
	_, err := client.EligibleVoters(context.Background(), "m1", "voter")

	assert.ErrorIs(t, err, domain.ErrRosterUnavailable)
}
