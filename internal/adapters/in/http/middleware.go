package http

import (
	"net/http"
	"strings"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ActorMiddleware builds the acting user from the identity headers set by
// the gateway: X-User-Id carries the user UUID, X-User-Roles a
// comma-separated role list. Requests without a valid identity get 401.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rawID := ctx.Request().Header.Get("X-User-Id")
			if rawID == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "missing X-User-Id header",
				})
			}

			userID, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "malformed X-User-Id header",
				})
			}

			roles := parseRoles(ctx.Request().Header.Get("X-User-Roles"))
			actor, err := account.NewActor(userID, roles)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "unknown role in X-User-Roles header",
				})
			}

			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

// actorFrom returns the actor placed in the request context by
// ActorMiddleware.
func actorFrom(ctx echo.Context) account.Actor {
	actor, _ := ctx.Get(actorContextKey).(account.Actor)
	return actor
}

func parseRoles(raw string) []account.Role {
	parts := strings.Split(raw, ",")
	roles := make([]account.Role, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		roles = append(roles, account.Role(p))
	}
	if len(roles) == 0 {
		roles = append(roles, account.RoleCustomer)
	}
	return roles
}
