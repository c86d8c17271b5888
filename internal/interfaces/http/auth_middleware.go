package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/pkg/jwt"
)

// LocalIdentity clave de c.Locals donde AuthMiddleware deja la entity.Identity.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// No consulta el almacén: todo sale del token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Unauthorized: No token provided.")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "Unauthorized: expected 'Bearer <token>'.")
		}
		// fasthttp recorta el espacio final del header: "Bearer " llega como "Bearer" y cae arriba
		claims, err := jwt.Verify(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpired):
				return unauthorized(c, "TOKEN_EXPIRED", "Unauthorized: token expired.")
			case errors.Is(err, jwt.ErrInvalidSignature):
				return unauthorized(c, "INVALID_SIGNATURE", "Unauthorized: invalid signature.")
			default:
				return unauthorized(c, "MALFORMED_TOKEN", "Unauthorized: malformed token.")
			}
		}

		c.Locals(LocalIdentity, entity.Identity{
			UserID:    claims.UserID,
			Name:      claims.Name,
			Role:      claims.Role,
			Phone:     claims.Phone,
			UserClass: claims.UserClass,
			ExpiresAt: claims.ExpiresAtTime(),
		})
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después de AuthMiddleware).
func GetIdentity(c *fiber.Ctx) (entity.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(entity.Identity)
	return id, ok
}

// RequireRole exige que la identidad tenga alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 sin identidad (falta AuthMiddleware o token).
//   - 403 token autenticado sin claim de rol (MISSING_ROLE).
//   - 403 rol fuera del conjunto permitido (FORBIDDEN).
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return unauthorized(c, "UNAUTHORIZED", "Unauthorized: No token provided.")
		}
		if id.Role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "Forbidden: token has no role."})
		}
		if _, ok := allowed[id.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Forbidden: Admins only."})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
