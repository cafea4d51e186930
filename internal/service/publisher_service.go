package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

// NatsPublisher is the part of *nats.Conn the publisher needs.
type NatsPublisher interface {
	Publish(subject string, data []byte) error
}

type publisherService struct {
	pubSub      message.Publisher
	topicName   string
	nats        NatsPublisher
	natsSubject string
}

// NewPublisherService publishes to the in-process topic and, when nc is not
// nil, mirrors every payload to natsSubject.
func NewPublisherService(pubSub message.Publisher, topicName string, nc NatsPublisher, natsSubject string) IPublisherService {
	return &publisherService{
		pubSub:      pubSub,
		topicName:   topicName,
		nats:        nc,
		natsSubject: natsSubject,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	var errs []error
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		errs = append(errs, fmt.Errorf("publish to %s: %w", p.topicName, err))
	}

	if p.nats != nil {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			errs = append(errs, fmt.Errorf("publish to nats %s: %w", p.natsSubject, err))
		}
	}

	return errors.Join(errs...)
}
