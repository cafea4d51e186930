package controller

import (
	"io"
	"mime/multipart"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
}

type uploadController struct {
	service     service.IUploadService
	requireAuth fiber.Handler
}

func NewUploadController(service service.IUploadService, requireAuth fiber.Handler) IUploadController {
	return &uploadController{
		service:     service,
		requireAuth: requireAuth,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/notes/upload", c.requireAuth, c.Upload)
	h.Get("/uploads/:id", c.requireAuth, c.Progress)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	session, err := CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.UploadNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest
	}

	var file *service.NoteFile
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file = noteFileFrom(fileHeader)
	}

	res, err := c.service.Submit(ctx.Context(), &service.UploadNoteInput{
		Owner:   session.User.Id,
		Request: &req,
		File:    file,
	})
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Note uploaded", res))
}

func (c *uploadController) Progress(ctx *fiber.Ctx) error {
	session, err := CurrentSession(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.ErrNotFound
	}

	res, err := c.service.Progress(ctx.Context(), session.User.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func noteFileFrom(fh *multipart.FileHeader) *service.NoteFile {
	return &service.NoteFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
