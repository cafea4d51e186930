package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadNoteInput struct {
	Owner   string
	Request *dto.UploadNoteRequest
	File    *NoteFile
}

type IUploadService interface {
	Submit(ctx context.Context, in *UploadNoteInput) (*dto.UploadNoteResponse, error)
	Progress(ctx context.Context, owner string, uploadId uuid.UUID) (*dto.UploadProgressResponse, error)
}

type uploadService struct {
	validator        IFileValidatorService
	normalizer       IPdfNormalizerService
	uploader         IUploaderService
	recorder         IRecorderService
	tracker          IUploadTrackerService
	publisherService IPublisherService
	store            ObjectStore
	cleanupOrphans   bool
	log              *zap.Logger
}

func NewUploadService(
	validator IFileValidatorService,
	normalizer IPdfNormalizerService,
	uploader IUploaderService,
	recorder IRecorderService,
	tracker IUploadTrackerService,
	publisherService IPublisherService,
	store ObjectStore,
	cleanupOrphans bool,
	log *zap.Logger,
) IUploadService {
	return &uploadService{
		validator:        validator,
		normalizer:       normalizer,
		uploader:         uploader,
		recorder:         recorder,
		tracker:          tracker,
		publisherService: publisherService,
		store:            store,
		cleanupOrphans:   cleanupOrphans,
		log:              log,
	}
}

// ObjectKey is where an owner's note file lives in the bucket. The owner is
// escaped into a single path segment so it can never leave the notes prefix.
func ObjectKey(owner string, fileId uuid.UUID) string {
	return strings.Join([]string{
		constant.NoteObjectPrefix,
		ownerSegment(owner),
		fileId.String() + constant.NoteFileExtension,
	}, "/")
}

func ownerSegment(owner string) string {
	seg := url.PathEscape(owner)
	if seg == "" || strings.Trim(seg, ".") == "" {
		return strings.ReplaceAll("_"+seg, ".", "%2E")
	}
	return seg
}

// Submit runs validate, normalize, upload and record in order. Nothing is
// retried. A rejected file never reaches the object store.
func (s *uploadService) Submit(ctx context.Context, in *UploadNoteInput) (*dto.UploadNoteResponse, error) {
	if err := s.validator.ValidateFields(in.Request); err != nil {
		return nil, err
	}

	uploadId := uuid.New()
	if in.Request.UploadId != "" {
		parsed, err := uuid.Parse(in.Request.UploadId)
		if err != nil {
			return nil, serverutils.NewValidationError("upload_id", "upload_id must be a valid UUID")
		}
		uploadId = parsed
	}

	if err := s.tracker.Begin(in.Owner, uploadId); err != nil {
		return nil, err
	}

	log := s.log.With(zap.String("upload_id", uploadId.String()), zap.String("owner", in.Owner))
	defer s.failOnPanic(log, in.Owner, uploadId)

	if err := s.validator.ValidateFile(in.File); err != nil {
		s.tracker.Reject(uploadId, err.Error())
		return nil, err
	}

	raw, err := s.validator.ReadFile(in.File)
	if err != nil {
		var ve *serverutils.ValidationError
		if errors.As(err, &ve) {
			s.tracker.Reject(uploadId, ve.Error())
			return nil, err
		}
		return nil, s.fail(log, uploadId, "read", &serverutils.DecodeError{Err: err})
	}

	s.tracker.Advance(uploadId, entity.UploadStateNormalizing)
	normalized, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return nil, s.fail(log, uploadId, "normalize", err)
	}

	s.tracker.Advance(uploadId, entity.UploadStateUploading)
	key := ObjectKey(in.Owner, uuid.New())
	fileUrl, err := s.uploader.Upload(ctx, key, normalized, func(percent int) {
		s.tracker.Progress(uploadId, percent)
	})
	if err != nil {
		return nil, s.fail(log, uploadId, "upload", err)
	}

	s.tracker.Advance(uploadId, entity.UploadStateRecording)
	note, err := s.recorder.Record(ctx, &RecordNoteInput{
		Title:       in.Request.Title,
		Subject:     in.Request.Subject,
		Description: in.Request.Description,
		Owner:       in.Owner,
		File: entity.FileRef{
			Url:         fileUrl,
			Name:        in.File.Name,
			Size:        in.File.Size,
			ContentType: in.File.ContentType,
			ObjectKey:   key,
		},
	})
	if err != nil {
		s.removeOrphan(log, key)
		return nil, s.fail(log, uploadId, "record", err)
	}

	s.tracker.Finish(uploadId, note.Id)
	log.Info("note uploaded", zap.String("note_id", note.Id.String()), zap.String("object_key", key))

	s.publishUploaded(ctx, log, note)

	return &dto.UploadNoteResponse{
		Id:       note.Id,
		UploadId: uploadId,
		FileUrl:  note.File.Url,
	}, nil
}

func (s *uploadService) Progress(ctx context.Context, owner string, uploadId uuid.UUID) (*dto.UploadProgressResponse, error) {
	session, err := s.tracker.Get(owner, uploadId)
	if err != nil {
		return nil, err
	}

	return &dto.UploadProgressResponse{
		UploadId: session.Id,
		State:    string(session.State),
		Progress: session.Progress,
		Error:    session.Error,
		NoteId:   session.NoteId,
	}, nil
}

func (s *uploadService) fail(log *zap.Logger, uploadId uuid.UUID, stage string, err error) error {
	log.Error("note upload failed", zap.String("stage", stage), zap.Error(err))
	s.tracker.Fail(uploadId, constant.MessageUploadFailed)
	return err
}

// failOnPanic releases the owner's active session before the panic
// continues to the error middleware.
func (s *uploadService) failOnPanic(log *zap.Logger, owner string, uploadId uuid.UUID) {
	r := recover()
	if r == nil {
		return
	}

	if session, err := s.tracker.Get(owner, uploadId); err == nil && session.State.Active() {
		log.Error("note upload panicked", zap.Any("panic", r))
		s.tracker.Fail(uploadId, constant.MessageUploadFailed)
	}
	panic(r)
}

func (s *uploadService) removeOrphan(log *zap.Logger, key string) {
	if !s.cleanupOrphans {
		log.Warn("object left without a note record", zap.String("object_key", key))
		return
	}

	// the request context may already be done, the delete must still run
	if err := s.store.Delete(context.Background(), key); err != nil {
		log.Error("failed to delete orphaned object", zap.String("object_key", key), zap.Error(err))
	}
}

func (s *uploadService) publishUploaded(ctx context.Context, log *zap.Logger, note *entity.Note) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.PublishNoteUploadedMessage{
		NoteId:     note.Id,
		ObjectKey:  note.File.ObjectKey,
		UploadedBy: note.UploadedBy,
	})
	if err != nil {
		log.Error("failed to encode note.uploaded event", zap.Error(err))
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		log.Warn("failed to publish note.uploaded event", zap.Error(fmt.Errorf("note %s: %w", note.Id, err)))
	}
}
