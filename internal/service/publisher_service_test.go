package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNats struct {
	subject string
	data    []byte
	err     error
}

func (r *recordingNats) Publish(subject string, data []byte) error {
	r.subject = subject
	r.data = data
	return r.err
}

func TestPublisherService_PublishesToTopicAndNats(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "note.uploaded")
	require.NoError(t, err)

	nc := &recordingNats{}
	svc := NewPublisherService(pubSub, "note.uploaded", nc, "notes.uploaded")

	require.NoError(t, svc.Publish(ctx, []byte(`{"note_id":"x"}`)))

	select {
	case msg := <-messages:
		assert.JSONEq(t, `{"note_id":"x"}`, string(msg.Payload))
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}

	assert.Equal(t, "notes.uploaded", nc.subject)
	assert.JSONEq(t, `{"note_id":"x"}`, string(nc.data))
}

func TestPublisherService_WithoutNats(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := NewPublisherService(pubSub, "note.uploaded", nil, "")
	assert.NoError(t, svc.Publish(context.Background(), []byte("{}")))
}

func TestPublisherService_ReportsNatsFailure(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := NewPublisherService(pubSub, "note.uploaded", &recordingNats{err: errors.New("nats: connection closed")}, "notes.uploaded")

	err := svc.Publish(context.Background(), []byte("{}"))
	assert.ErrorContains(t, err, "connection closed")
}
