package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService fills in note previews after an upload. Previews are
// best effort: a failed message is logged and acked, never redelivered.
type consumerService struct {
	pubSub         message.Subscriber
	topicName      string
	noteRepository repository.INoteRepository
	store          ObjectStore
	log            *zap.Logger
}

func NewConsumerService(
	pubSub message.Subscriber,
	topicName string,
	noteRepository repository.INoteRepository,
	store ObjectStore,
	log *zap.Logger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		noteRepository: noteRepository,
		store:          store,
		log:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			if err := cs.processMessage(ctx, msg); err != nil {
				cs.log.Error("preview generation failed",
					zap.String("message_uuid", msg.UUID),
					zap.Error(err),
				)
			}
			msg.Ack()
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("panic while building preview: %v", e)
		}
	}()

	var payload dto.PublishNoteUploadedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("bad payload %q: %w", string(msg.Payload), err)
	}

	body, err := cs.store.Download(ctx, payload.ObjectKey)
	if err != nil {
		return fmt.Errorf("download %s: %w", payload.ObjectKey, err)
	}
	defer body.Close()

	pages, err := serverutils.ExtractTextPerPage(body)
	if err != nil {
		return err
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		if t := strings.TrimSpace(page.Content); t != "" {
			texts = append(texts, t)
		}
	}

	preview := serverutils.NormalizePreview(strings.Join(texts, " "), constant.PreviewMaxLength)
	if preview == "" {
		cs.log.Debug("note has no extractable text", zap.String("note_id", payload.NoteId.String()))
		return nil
	}

	if err := cs.noteRepository.UpdatePreview(ctx, payload.NoteId, preview); err != nil {
		return fmt.Errorf("store preview for note %s: %w", payload.NoteId, err)
	}

	cs.log.Info("note preview stored",
		zap.String("note_id", payload.NoteId.String()),
		zap.Int("pages", len(pages)),
	)

	return nil
}
