package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/events"
)

func TestFeedbackReceivedEvent_Marshal(t *testing.T) {
	ev := events.FeedbackReceivedEvent{
		EventType:    events.SubjectFeedbackReceived,
		SubmissionID: uuid.New(),
		SiteID:       uuid.New(),
		CanteenID:    uuid.New(),
		SubmittedAt:  time.Now(),
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "feedback.received", decoded["event_type"])
}

func TestLiveStatsHub_RefreshBroadcasts(t *testing.T) {
	hub := events.NewLiveStatsHub(func(ctx context.Context) (interface{}, error) {
		return map[string]int{"total": 3}, nil
	})

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Refresh(context.Background())

	select {
	case payload := <-ch:
		var decoded map[string]int
		require.NoError(t, json.Unmarshal(payload, &decoded))
		require.Equal(t, 3, decoded["total"])
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot broadcast")
	}
}

func TestLiveStatsHub_CloseWithoutListen(t *testing.T) {
	hub := events.NewLiveStatsHub(func(ctx context.Context) (interface{}, error) {
		return map[string]int{"total": 1}, nil
	})

	// Listen never ran, so there is no connection to tear down.
	hub.Close()
	hub.Close()

	// The hub still broadcasts to local subscribers after Close.
	ch, cancel := hub.Subscribe()
	defer cancel()
	hub.Refresh(context.Background())

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot broadcast")
	}
}

func TestLiveStatsHub_KeepsLastSnapshotOnFailure(t *testing.T) {
	fail := false
	hub := events.NewLiveStatsHub(func(ctx context.Context) (interface{}, error) {
		if fail {
			return nil, errors.New("db down")
		}
		return map[string]int{"total": 1}, nil
	})

	hub.Refresh(context.Background())
	fail = true
	hub.Refresh(context.Background())

	// A new subscriber still gets the last good snapshot.
	ch, cancel := hub.Subscribe()
	defer cancel()

	select {
	case payload := <-ch:
		var decoded map[string]int
		require.NoError(t, json.Unmarshal(payload, &decoded))
		require.Equal(t, 1, decoded["total"])
	case <-time.After(time.Second):
		t.Fatal("expected the last good snapshot")
	}
}
