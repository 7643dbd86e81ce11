// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/configs"
	usermodel "collabsphere_backend/internals/features/users/model"
	"collabsphere_backend/internals/policy"
)

// AuthMiddleware verifies the bearer token, checks the user is still active
// and stores user_id / user_role / user_name in locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or missing user ID")
		}

		var user usermodel.UserModel
		if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.UserActive {
			return fiber.NewError(fiber.StatusForbidden, "Account has been deactivated")
		}

		c.Locals("user_id", user.UserID.String())
		c.Locals("user_role", user.UserRole)
		c.Locals("user_name", user.UserFullName)

		return c.Next()
	}
}

// GetActor rebuilds the policy actor from locals set by AuthMiddleware.
func GetActor(c *fiber.Ctx) (policy.Actor, error) {
	idStr, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("user_role").(string)
	id, err := uuid.Parse(idStr)
	if err != nil || role == "" {
		return policy.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing identity")
	}
	return policy.Actor{ID: id, Role: role}, nil
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		// websocket clients from browsers cannot set headers
		if q := c.Query("token"); q != "" {
			return q, nil
		}
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("user_id claim missing")
	}
	return uuid.Parse(raw)
}

// NewToken issues an access token for the given user. Kept here so login and
// tests mint tokens the exact way the middleware expects them.
func NewToken(userID uuid.UUID, role, fullName string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"user_role": role,
		"user_name": fullName,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
