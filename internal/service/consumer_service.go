package service

import (
	"context"
	"encoding/json"
	"log"

	"next-action-be/internal/dto"
	"next-action-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the single writer of the in-memory event log. Every
// commit flows through one subscription, so appends never race with each
// other.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	eventRepo memory.IEventLogRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventRepo memory.IEventLogRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		eventRepo: eventRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.CommitEventsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal commit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if len(payload.Events) == 0 {
		msg.Ack()
		return
	}

	cs.eventRepo.Append(payload.Events)
	log.Printf("[INFO] Committed %d events to the log (total %d)", len(payload.Events), cs.eventRepo.Len())
	msg.Ack()
}
