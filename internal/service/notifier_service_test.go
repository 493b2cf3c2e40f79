package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-writing-assistant-be/internal/model"
	"ai-writing-assistant-be/internal/pkg/logger"
	assistantEvents "ai-writing-assistant-be/pkg/assistant/events"
	"ai-writing-assistant-be/pkg/bus"
	"ai-writing-assistant-be/pkg/events"
	"ai-writing-assistant-be/pkg/store"
)

type recordingDelivery struct {
	mu            sync.Mutex
	notifications []model.Notification
}

func (d *recordingDelivery) Send(sessionId uuid.UUID, notification model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, notification)
}

func (d *recordingDelivery) all() []model.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Notification(nil), d.notifications...)
}

func TestNotifierForwardsBusEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	delivery := &recordingDelivery{}
	notifier := NewNotifierService(bus.NewSubscriber(pubSub, "session-events"), delivery, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, notifier.Start(ctx))

	sessionId := uuid.New()
	publisher := assistantEvents.NewBusPublisher(bus.NewPublisher(pubSub, "session-events"), logger.NewNopLogger())
	publisher.PublishSubmissionFailed(ctx, sessionId, store.ModeGrammar, "quota exhausted")

	require.Eventually(t, func() bool {
		return len(delivery.all()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	notif := delivery.all()[0]
	assert.Equal(t, events.SubmissionFailed, notif.TypeCode)
	assert.Equal(t, sessionId, notif.SessionID)
	assert.Equal(t, "Task Failed", notif.Title)
	assert.Equal(t, "Error processing request: quota exhausted", notif.Message)
}

func TestHandleEventRendersToast(t *testing.T) {
	delivery := &recordingDelivery{}
	notifier := NewNotifierService(nil, delivery, logger.NewNopLogger())
	sessionId := uuid.New()

	err := notifier.handleEvent(context.Background(), events.BaseEvent{
		Type: events.SubmissionCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"mode":       "grammar",
			"word_count": 5,
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	err = notifier.handleEvent(context.Background(), events.BaseEvent{
		Type: events.ModeSelected,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"mode":       "grammar",
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	notifications := delivery.all()
	require.Len(t, notifications, 2)

	assert.Equal(t, "✔ Task completed successfully!", notifications[0].Message)
	assert.Equal(t, "Task Completed", notifications[0].Title)
	assert.Equal(t, 5, notifications[0].Metadata["word_count"])

	assert.Equal(t, "grammar mode is ready.", notifications[1].Message)
	assert.Equal(t, sessionId, notifications[1].SessionID)
}

func TestHandleEventIgnoresUnknownAndMalformed(t *testing.T) {
	delivery := &recordingDelivery{}
	notifier := NewNotifierService(nil, delivery, logger.NewNopLogger())

	// Unknown event codes are dropped, not retried.
	err := notifier.handleEvent(context.Background(), events.BaseEvent{
		Type: "SOMETHING_ELSE",
		Data: map[string]interface{}{"session_id": uuid.New().String()},
	})
	require.NoError(t, err)

	// So are events without a parseable session id.
	err = notifier.handleEvent(context.Background(), events.BaseEvent{
		Type: events.SessionReset,
		Data: map[string]interface{}{},
	})
	require.NoError(t, err)

	assert.Empty(t, delivery.all())
}
