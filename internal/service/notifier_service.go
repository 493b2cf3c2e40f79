package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-writing-assistant-be/internal/model"
	"ai-writing-assistant-be/internal/pkg/logger"
	"ai-writing-assistant-be/pkg/bus"
	"ai-writing-assistant-be/pkg/events"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(sessionId uuid.UUID, notification model.Notification)
}

// notificationTypes registers the toast rendered for each session event.
// Templates substitute {key} placeholders from the event payload.
var notificationTypes = map[string]model.NotificationType{
	events.SessionCreated:      {Code: events.SessionCreated, DisplayName: "Session Ready", Template: "Your writing session is ready."},
	events.ModeSelected:        {Code: events.ModeSelected, DisplayName: "Mode Selected", Template: "{mode} mode is ready."},
	events.TemplateApplied:     {Code: events.TemplateApplied, DisplayName: "Template Applied", Template: "Applied \"{template}\" to your draft."},
	events.ProcessingStarted:   {Code: events.ProcessingStarted, DisplayName: "Processing", Template: "Processing..."},
	events.SubmissionCompleted: {Code: events.SubmissionCompleted, DisplayName: "Task Completed", Template: "✔ Task completed successfully!"},
	events.SubmissionFailed:    {Code: events.SubmissionFailed, DisplayName: "Task Failed", Template: "Error processing request: {reason}"},
	events.SessionReset:        {Code: events.SessionReset, DisplayName: "Session Reset", Template: "Back to home. Pick a mode to continue."},
	events.HistoryReplayed:     {Code: events.HistoryReplayed, DisplayName: "History Replayed", Template: "Restored input from history."},
}

// NotifierService forwards session events from the bus to the WebSocket hub.
type NotifierService struct {
	subscriber *bus.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotifierService(sub *bus.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotifierService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, s.handleEvent); err != nil {
		s.logger.Error("NotifierService", "Failed to start notifier subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotifierService", "Notifier started, forwarding session events", nil)
	return nil
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	config, ok := notificationTypes[event.EventType()]
	if !ok {
		s.logger.Warn("NotifierService", fmt.Sprintf("No notification registered for event: '%s'", event.EventType()), nil)
		return nil
	}

	sessionIdStr, _ := event.Payload()["session_id"].(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		s.logger.Warn("NotifierService", fmt.Sprintf("Event %s carries no session_id", event.EventType()), nil)
		return nil
	}

	notif := s.buildNotification(sessionId, config, event)
	if s.delivery != nil {
		s.delivery.Send(sessionId, notif)
	}
	return nil
}

func (s *NotifierService) buildNotification(sessionId uuid.UUID, config model.NotificationType, event events.Event) model.Notification {
	// Simple template engine
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	metadata := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		metadata[k] = v
	}

	return model.Notification{
		ID:        uuid.New(),
		SessionID: sessionId,
		TypeCode:  config.Code,
		Title:     config.DisplayName,
		Message:   msg,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}
