package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	contextUserID = "userID"
	contextRoles  = "roles"
)

// RequireAuth parses the Bearer token and puts the user id and role names on
// the context. Missing token is 401; an invalid or expired one is 403.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token claims")
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token subject")
			}

			roles := []string{}
			if rawRoles, ok := claims["roles"].([]interface{}); ok {
				for _, r := range rawRoles {
					if name, ok := r.(string); ok {
						roles = append(roles, name)
					}
				}
			}

			c.Set(contextUserID, uint(sub))
			c.Set(contextRoles, roles)
			return next(c)
		}
	}
}

// RequireRole gates a route on any of the given role names. Must run after
// RequireAuth.
func RequireRole(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, name := range names {
				if HasRole(c, name) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(contextUserID).(uint)
	if !ok || id == 0 {
		return 0, fmt.Errorf("no authenticated user on context")
	}
	return id, nil
}

func Roles(c echo.Context) []string {
	roles, _ := c.Get(contextRoles).([]string)
	return roles
}

func HasRole(c echo.Context, name string) bool {
	for _, r := range Roles(c) {
		if r == name {
			return true
		}
	}
	return false
}
