package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"userauth/internal/auth"
	"userauth/internal/config"
	"userauth/internal/handler"
	"userauth/internal/service"

	_ "userauth/docs"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{CORSAllowOrigins: []string{"https://front.example"}}
	// A nil repository is never reached by the requests below.
	authService := service.NewAuthService(nil, auth.NewJWTService("test-secret"))

	e := echo.New()
	Register(e, cfg, logger, handler.NewAuthHandler(authService, logger))
	return e
}

func TestRegister_Healthz(t *testing.T) {
	e := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRegister_Routes(t *testing.T) {
	e := newTestEcho(t)

	routes := map[string]bool{}
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	assert.True(t, routes["POST /usuarios"])
	assert.True(t, routes["POST /login"])
	assert.True(t, routes["GET /swagger/*"])
}

func TestRegister_ValidatorRejectsEmptyFields(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(`{"name":"Ana","email":"","password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"all fields are required"}`, rec.Body.String())
}

func TestRegister_CORSPreflight(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://front.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://front.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderAuthorization)
}

func TestRegister_CORSRejectsOtherOrigin(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRegister_SwaggerDoc(t *testing.T) {
	e := newTestEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/usuarios")
	assert.Contains(t, rec.Body.String(), "/login")
}
