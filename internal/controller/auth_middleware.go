package controller

import (
	"strings"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"

// RequireAuth resolves the bearer token into a session and stores it in
// the request locals.
func RequireAuth(authService service.IAuthService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := bearerToken(ctx)
		if token == "" {
			return serverutils.ErrUnauthorized
		}

		session, err := authService.Resolve(ctx.Context(), token)
		if err != nil {
			return err
		}

		ctx.Locals(sessionLocalsKey, session)
		return ctx.Next()
	}
}

func CurrentSession(ctx *fiber.Ctx) (*entity.Session, error) {
	session, ok := ctx.Locals(sessionLocalsKey).(*entity.Session)
	if !ok || session == nil {
		return nil, serverutils.ErrUnauthorized
	}
	return session, nil
}

func bearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
