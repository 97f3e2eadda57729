package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"schoolapi/internal/errors"
	"schoolapi/internal/model"
	"schoolapi/internal/service"
)

const (
	userContextKey = "user"
	tokenQueryName = "token"
	bearerScheme   = "Bearer"
)

// sessionLookupError marks failures of the session backend itself, as opposed
// to a missing or unknown token.
type sessionLookupError struct {
	err error
}

func (e *sessionLookupError) Error() string { return e.err.Error() }
func (e *sessionLookupError) Unwrap() error { return e.err }

// SessionAuth returns middleware that resolves the session token from the
// Authorization bearer header or the token query parameter and stores the
// user in the context.
func SessionAuth(authService service.AuthService) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization + ",query:" + tokenQueryName,
		AuthScheme: bearerScheme,
		Validator: func(token string, c echo.Context) (bool, error) {
			user, err := authService.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if stderrors.Is(err, errors.ErrNotAuthenticated) {
					return false, nil
				}
				return false, &sessionLookupError{err: err}
			}
			c.Set(userContextKey, user)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			var lookupErr *sessionLookupError
			if stderrors.As(err, &lookupErr) {
				return errorResponse(lookupErr.err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrNotAuthenticated.Error(),
				Code:  "NOT_AUTHENTICATED",
			})
		},
	})
}

// CurrentUser returns the user stored by SessionAuth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok && user != nil
}

// sessionToken extracts the token the same way SessionAuth does, for
// endpoints that must not reject unauthenticated callers.
func sessionToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(bearerScheme)+1 && strings.EqualFold(header[:len(bearerScheme)], bearerScheme) && header[len(bearerScheme)] == ' ' {
		return strings.TrimSpace(header[len(bearerScheme)+1:])
	}
	return c.QueryParam(tokenQueryName)
}
