package main

import (
	"context"
	"fmt"
	"os/signal"
	"studyshare-be/internal/config"
	"studyshare-be/internal/constant"
	"studyshare-be/internal/controller"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/repository"
	"studyshare-be/internal/service"
	"studyshare-be/pkg/database"
	garagestorages3 "studyshare-be/pkg/garage-storage-s3"
	"studyshare-be/pkg/identity"
	miniostorage "studyshare-be/pkg/minio-storage"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(ctx, cfg.DBConnectionString)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	store, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	provider, err := newCredentialProvider(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	defer pubSub.Close()

	var natsPublisher service.NatsPublisher
	if cfg.Events.NatsURL != "" {
		nc, err := nats.Connect(cfg.Events.NatsURL, nats.Name("studyshare"))
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer nc.Drain()
		natsPublisher = nc
		log.Info("mirroring note events to nats", zap.String("subject", cfg.Events.NatsSubject))
	}

	noteRepository := repository.NewNoteRepository(db)

	publisherService := service.NewPublisherService(pubSub, cfg.Events.NoteUploadedTopic, natsPublisher, cfg.Events.NatsSubject)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.NoteUploadedTopic, noteRepository, store, log.Named("consumer"))

	authService := service.NewAuthService(provider, cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	noteService := service.NewNoteService(noteRepository)
	uploadService := service.NewUploadService(
		service.NewFileValidatorService(),
		service.NewPdfNormalizerService(),
		service.NewUploaderService(store),
		service.NewRecorderService(noteRepository),
		service.NewUploadTrackerService(cfg.Upload.Retention),
		publisherService,
		store,
		cfg.Upload.CleanupOrphans,
		log.Named("upload"),
	)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimit,
	})

	app.Use(cors.New())
	app.Use(serverutils.RequestLogger(log.Named("http")))
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	api := app.Group("/api")
	controller.NewHealthController(db).RegisterRoutes(api)
	controller.NewAuthController(authService).RegisterRoutes(api)
	controller.NewNoteController(noteService).RegisterRoutes(api)
	controller.NewUploadController(uploadService, controller.RequireAuth(authService)).RegisterRoutes(api)

	if err := consumerService.Consume(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.AppPort))
		errCh <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

func newObjectStore(ctx context.Context, c config.StorageConfig) (service.ObjectStore, error) {
	switch c.Driver {
	case config.StorageDriverMinio:
		return miniostorage.NewMinioStorage(ctx, miniostorage.Config{
			Endpoint:      c.MinioEndpoint,
			AccessKey:     c.AccessKey,
			SecretKey:     c.SecretKey,
			Bucket:        c.Bucket,
			Region:        c.Region,
			UseSSL:        c.MinioUseSSL,
			PublicBaseURL: c.PublicBaseURL,
			PartSize:      constant.UploadPartSize,
		}, log.Named("minio"))
	default:
		return garagestorages3.NewGarageClient(garagestorages3.Config{
			AccessKey:     c.AccessKey,
			SecretKey:     c.SecretKey,
			Endpoint:      c.Endpoint,
			Region:        c.Region,
			Bucket:        c.Bucket,
			PublicBaseURL: c.PublicBaseURL,
			PartSize:      constant.UploadPartSize,
		})
	}
}

func newCredentialProvider(ctx context.Context, c config.AuthConfig) (identity.CredentialProvider, error) {
	if c.Provider == config.AuthProviderOIDC {
		return identity.NewRemoteProvider(ctx, identity.OIDCConfig{
			IssuerURL:    c.OIDCIssuerURL,
			ClientID:     c.OIDCClientID,
			ClientSecret: c.OIDCClientSecret,
		})
	}

	log.Warn("using the mock credential provider, every login succeeds")
	return identity.NewMockProvider(), nil
}
