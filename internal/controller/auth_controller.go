package controller

import (
	"studyshare-be/internal/dto"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service     service.IAuthService
	requireAuth fiber.Handler
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{
		service:     service,
		requireAuth: RequireAuth(service),
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/auth")
	h.Post("/login", c.Login)
	h.Post("/register", c.Register)
	h.Post("/logout", c.requireAuth, c.Logout)
	h.Get("/me", c.requireAuth, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrBadRequest
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Registration successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.Context(), bearerToken(ctx)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	session, err := CurrentSession(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", dto.UserResponse{
		Id:    session.User.Id,
		Email: session.User.Email,
		Name:  session.User.Name,
	}))
}
