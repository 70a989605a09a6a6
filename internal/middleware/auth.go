package middleware

import (
	"net/http"
	"strings"

	"github.com/campusops/events-core/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Auth validates the bearer token and stores the authenticated actor in the
// request context. Claims: sub (user id), role.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}
			tokenString := header[len(prefix):]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject or role")
			}

			c.Set(actorContextKey, models.Actor{UserID: sub, Role: models.Role(role)})
			return next(c)
		}
	}
}

// RequireRole restricts a route to the given roles. Auth must have run
// first; anyone else gets 403 before the handler sees the request.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// ActorFrom extracts the authenticated actor placed by Auth. The zero Actor
// comes back for unauthenticated test contexts.
func ActorFrom(c echo.Context) models.Actor {
	if actor, ok := c.Get(actorContextKey).(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}

// SetActor is a test helper mirroring what Auth does.
func SetActor(c echo.Context, actor models.Actor) {
	c.Set(actorContextKey, actor)
}
