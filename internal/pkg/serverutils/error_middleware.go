package serverutils

import (
	"errors"
	"runtime/debug"
	"time"

	"studyshare-be/internal/constant"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandlerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
					fiber.StatusInternalServerError, ErrInternal.Error(),
				))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		return writeError(c, log, err)
	}
}

func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(ve.ToErrorDetails()))
	}

	if IsUploadFailure(err) {
		log.Error("upload failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			fiber.StatusInternalServerError, constant.MessageUploadFailed,
		))
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, ErrNotFound.Error()))
	case errors.Is(err, ErrInvalidFile):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, ErrBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, ErrUnauthorized.Error()))
	case errors.Is(err, ErrUploadInProgress):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, ErrUploadInProgress.Error()))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
		fiber.StatusInternalServerError, ErrInternal.Error(),
	))
}

// RequestLogger logs one line per request after the error handler has set
// the final status.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
