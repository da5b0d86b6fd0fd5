package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "policyhub/pkg/domain"
)

func TestPublisherStampsAndPersists(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	event := Event{
		ActorID:  id.AccountID(7),
		PolicyID: id.PolicyID("A1B2"),
		Action:   string(EventPolicySnapshotIngested),
	}
	require.NoError(t, pub.Emit(context.Background(), event))

	events, err := store.ListByPolicy(context.Background(), id.PolicyID("A1B2"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(EventPolicySnapshotIngested), events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "publisher must stamp missing timestamps")
}

func TestQueuedPublisherDeliversThroughWorker(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	pub := NewQueuedPublisher(inbox)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	event := Event{
		ActorID:  id.AccountID(9),
		PolicyID: id.PolicyID("Q1"),
		Action:   string(EventInviteCandidatesComputed),
	}
	require.NoError(t, pub.Emit(context.Background(), event))

	require.Eventually(t, func() bool {
		events, err := store.ListByPolicy(context.Background(), id.PolicyID("Q1"))
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListByPolicy(context.Background(), id.PolicyID("Q1"))
	require.NoError(t, err)
	assert.False(t, events[0].Timestamp.IsZero(), "queued path must also stamp timestamps")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerDrainsInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 1)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{PolicyID: id.PolicyID("C3"), Action: string(EventTagSnapshotIngested), Timestamp: time.Now()}

	require.Eventually(t, func() bool {
		events, err := store.ListByPolicy(context.Background(), id.PolicyID("C3"))
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerFlushesBufferedEventsOnShutdown(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox)

	inbox <- Event{PolicyID: id.PolicyID("F1"), Action: string(EventPolicySnapshotIngested), Timestamp: time.Now()}
	inbox <- Event{PolicyID: id.PolicyID("F1"), Action: string(EventMemberSnapshotIngested), Timestamp: time.Now()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, worker.Run(ctx), context.Canceled)

	events, err := store.ListByPolicy(context.Background(), id.PolicyID("F1"))
	require.NoError(t, err)
	assert.Len(t, events, 2, "buffered events must survive shutdown")
}
