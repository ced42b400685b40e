package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedServer(svc *JWTService) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		fromEcho, _ := c.Get(ClaimsContextKey).(*Claims)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id":         claims.UserID,
			"email":      claims.Email,
			"same_value": fromEcho == claims,
		})
	}, RequireToken(svc))
	return e
}

func doGet(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireToken_Valid(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(5, "ana@x.com")
	require.NoError(t, err)

	rec := doGet(newProtectedServer(svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "ana@x.com", body["email"])
	assert.Equal(t, true, body["same_value"])
}

func TestRequireToken_Missing(t *testing.T) {
	svc := NewJWTService("test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"scheme only", "Bearer"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"token under other scheme", "Basic abc.def.ghi"},
		{"blank token", "Bearer    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(newProtectedServer(svc), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "token not provided", decodeBody(t, rec)["message"])
		})
	}
}

func TestRequireToken_Invalid(t *testing.T) {
	svc := NewJWTService("test-secret")

	expiredIssuer := NewJWTService("test-secret")
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.GenerateToken(1, "ana@x.com")
	require.NoError(t, err)

	forged, err := NewJWTService("other-secret").GenerateToken(1, "ana@x.com")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired": expired,
		"forged":  forged,
		"garbage": "abc.def.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			rec := doGet(newProtectedServer(svc), "Bearer "+token)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "invalid token", decodeBody(t, rec)["message"])
		})
	}
}
