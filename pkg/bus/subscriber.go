package bus

import (
	"context"
	"encoding/json"
	"log"

	"ai-writing-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from the in-process bus.
type Subscriber struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewSubscriber(pubSub *gochannel.GoChannel, topic string) *Subscriber {
	return &Subscriber{
		pubSub: pubSub,
		topic:  topic,
	}
}

// Subscribe registers a handler and consumes messages until ctx is done.
func (s *Subscriber) Subscribe(ctx context.Context, handler EventHandler) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg, handler)
		}
	}()

	return nil
}

func (s *Subscriber) processMessage(ctx context.Context, msg *message.Message, handler EventHandler) {
	var env envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	event := events.BaseEvent{
		Type:       env.Type,
		Data:       env.Data,
		OccurredAt: env.OccurredAt,
	}

	if err := handler(ctx, event); err != nil {
		log.Printf("[ERROR] Handler failed for event %s: %v", env.Type, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
