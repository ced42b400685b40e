package auth

import (
	"context"
	"errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "userauth/internal/errors"
)

// ClaimsContextKey is the echo context key holding the verified *Claims.
const ClaimsContextKey = "claims"

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by RequireToken.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// RequireToken gates a route on a valid "Authorization: Bearer <token>"
// header. A missing or malformed header, a non-Bearer scheme or a blank
// token answers 401, a token that fails
// verification answers 403. On success the claims are stored under
// ClaimsContextKey and on the request context.
func RequireToken(tokens *JWTService) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  ClaimsContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			if strings.TrimSpace(token) == "" {
				return nil, apperrors.ErrMissingToken
			}
			return tokens.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Extractor failures never reach ParseTokenFunc and count as missing.
			if !errors.Is(err, apperrors.ErrInvalidToken) {
				err = apperrors.ErrMissingToken
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, httpErr.Body())
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			if claims, ok := c.Get(ClaimsContextKey).(*Claims); ok {
				c.SetRequest(c.Request().WithContext(WithClaims(c.Request().Context(), claims)))
			}
			return next(c)
		})
	}
}
