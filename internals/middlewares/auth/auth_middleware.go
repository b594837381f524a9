package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/nvourlidas/CtGym-sub002/internals/configs"
	"github.com/nvourlidas/CtGym-sub002/internals/constants"
)

// AuthMiddleware verifies the bearer token and resolves the caller's identity
// (user_id, studio_id, role) into fiber locals. Token issuance lives in a
// separate identity service; this is the trust boundary.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, constants.ErrInternal)
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OnlyAdminMiddleware gates admin route groups.
func OnlyAdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrForbidden)
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fiber.ErrUnauthorized
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fiber.ErrUnauthorized
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fiber.ErrUnauthorized
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return jwt.ErrTokenInvalidClaims
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return jwt.ErrTokenInvalidClaims
		}
		expUnix = n
	default:
		return jwt.ErrTokenInvalidClaims
	}

	if time.Now().Add(-skew).Unix() >= expUnix {
		return jwt.ErrTokenExpired
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(string); ok {
		c.Locals("user_id", v)
	}
	if v, ok := claims["studio_id"].(string); ok {
		c.Locals("studio_id", v)
	}
	role, _ := claims["role"].(string)
	if role != constants.RoleAdmin {
		role = constants.RoleMember
	}
	c.Locals("role", role)
}
