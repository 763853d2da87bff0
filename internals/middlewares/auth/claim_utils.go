// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header first, cookie as fallback
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return strings.TrimSpace(parts[1]), nil
		}
		return "", errors.New("malformed Authorization header")
	}

	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}

	return "", errors.New("missing Authorization header")
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		if raw, ok = claims["sub"].(string); !ok {
			return uuid.Nil, errors.New("user_id claim missing")
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("user_id claim is not a UUID")
	}
	return id, nil
}

func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", errors.New("role claim missing")
	}
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent:
		return role, nil
	}
	return "", errors.New("unknown role: " + role)
}

/* ======== Expiry ======== */

// validateTokenExpiry checks exp with a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("exp claim missing")
	}

	var expAt time.Time
	switch v := expRaw.(type) {
	case float64:
		expAt = time.Unix(int64(v), 0)
	case int64:
		expAt = time.Unix(v, 0)
	default:
		return errors.New("exp claim malformed")
	}

	if time.Now().After(expAt.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}
