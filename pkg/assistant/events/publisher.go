package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ai-writing-assistant-be/internal/pkg/logger"
	"ai-writing-assistant-be/pkg/bus"
	pkgEvents "ai-writing-assistant-be/pkg/events"
	"ai-writing-assistant-be/pkg/store"
)

// Publisher abstracts event publishing for assistant session operations
type Publisher interface {
	PublishSessionCreated(ctx context.Context, sessionId uuid.UUID)
	PublishModeSelected(ctx context.Context, sessionId uuid.UUID, mode store.Mode)
	PublishTemplateApplied(ctx context.Context, sessionId uuid.UUID, mode store.Mode, templateName string)
	PublishProcessingStarted(ctx context.Context, sessionId uuid.UUID, mode store.Mode)
	PublishSubmissionCompleted(ctx context.Context, sessionId uuid.UUID, mode store.Mode, wordCount int)
	PublishSubmissionFailed(ctx context.Context, sessionId uuid.UUID, mode store.Mode, reason string)
	PublishSessionReset(ctx context.Context, sessionId uuid.UUID)
	PublishHistoryReplayed(ctx context.Context, sessionId uuid.UUID, index int, mode store.Mode)
}

// BusPublisher implements Publisher on top of the in-process event bus
type BusPublisher struct {
	publisher *bus.Publisher
	logger    logger.ILogger
}

// NewBusPublisher creates a new bus-backed event publisher
func NewBusPublisher(publisher *bus.Publisher, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishSessionCreated emits SESSION_CREATED event
func (p *BusPublisher) PublishSessionCreated(ctx context.Context, sessionId uuid.UUID) {
	p.publish(ctx, pkgEvents.SessionCreated, map[string]interface{}{
		"session_id": sessionId.String(),
	})
}

// PublishModeSelected emits MODE_SELECTED event
func (p *BusPublisher) PublishModeSelected(ctx context.Context, sessionId uuid.UUID, mode store.Mode) {
	p.publish(ctx, pkgEvents.ModeSelected, map[string]interface{}{
		"session_id": sessionId.String(),
		"mode":       string(mode),
	})
}

// PublishTemplateApplied emits TEMPLATE_APPLIED event
func (p *BusPublisher) PublishTemplateApplied(ctx context.Context, sessionId uuid.UUID, mode store.Mode, templateName string) {
	p.publish(ctx, pkgEvents.TemplateApplied, map[string]interface{}{
		"session_id": sessionId.String(),
		"mode":       string(mode),
		"template":   templateName,
	})
}

// PublishProcessingStarted emits PROCESSING_STARTED event
func (p *BusPublisher) PublishProcessingStarted(ctx context.Context, sessionId uuid.UUID, mode store.Mode) {
	p.publish(ctx, pkgEvents.ProcessingStarted, map[string]interface{}{
		"session_id": sessionId.String(),
		"mode":       string(mode),
	})
}

// PublishSubmissionCompleted emits SUBMISSION_COMPLETED event
func (p *BusPublisher) PublishSubmissionCompleted(ctx context.Context, sessionId uuid.UUID, mode store.Mode, wordCount int) {
	p.publish(ctx, pkgEvents.SubmissionCompleted, map[string]interface{}{
		"session_id": sessionId.String(),
		"mode":       string(mode),
		"word_count": wordCount,
	})
}

// PublishSubmissionFailed emits SUBMISSION_FAILED event
func (p *BusPublisher) PublishSubmissionFailed(ctx context.Context, sessionId uuid.UUID, mode store.Mode, reason string) {
	p.publish(ctx, pkgEvents.SubmissionFailed, map[string]interface{}{
		"session_id": sessionId.String(),
		"mode":       string(mode),
		"reason":     reason,
	})
}

// PublishSessionReset emits SESSION_RESET event
func (p *BusPublisher) PublishSessionReset(ctx context.Context, sessionId uuid.UUID) {
	p.publish(ctx, pkgEvents.SessionReset, map[string]interface{}{
		"session_id": sessionId.String(),
	})
}

// PublishHistoryReplayed emits HISTORY_REPLAYED event
func (p *BusPublisher) PublishHistoryReplayed(ctx context.Context, sessionId uuid.UUID, index int, mode store.Mode) {
	p.publish(ctx, pkgEvents.HistoryReplayed, map[string]interface{}{
		"session_id": sessionId.String(),
		"index":      index,
		"mode":       string(mode),
	})
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ASSISTANT", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
