package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"voc_backend/internals/clients"
	"voc_backend/internals/configs"
	helper "voc_backend/internals/helpers"
)

// RequireAuth extracts the bearer token, sanity-checks it locally and
// resolves the caller through the User service. The resulting Principal
// is stored in Locals for handlers; the raw token is kept for downstream
// calls that need to forward it.
func RequireAuth(users clients.UserClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, err)
		}

		role := ""
		if secret := configs.JWTSecret; secret != "" {
			claims := jwt.MapClaims{}
			parser := jwt.Parser{SkipClaimsValidation: true}
			if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}); err != nil {
				logrus.WithError(err).Debug("token failed local parse")
				return helper.JsonError(c, helper.ErrInvalidToken)
			}
			if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
				return helper.JsonError(c, helper.ErrInvalidToken)
			}
			if r, ok := claims["role"].(string); ok {
				role = r
			}
		}

		userID, err := users.ParseToken(c.UserContext(), tokenString)
		if err != nil {
			return helper.JsonError(c, err)
		}

		c.Locals(localsPrincipal, Principal{UserID: userID, Role: role})
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return "", helper.ErrInvalidToken
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", helper.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// validateTokenExpiry tolerates a small clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(exp), 0)) {
		return helper.ErrInvalidToken
	}
	return nil
}
