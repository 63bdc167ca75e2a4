package http

import (
	"context"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/observability"
	"github.com/spec-kit/auth-gateway/internal/service"
)

const gatewayTestSecret = "router-test-secret"

type memoryUserRepository struct {
	users map[string]*domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	stored := *user
	stored.ID = "id-" + user.Username
	r.users[user.Username] = &stored
	user.ID = stored.ID
	return nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           gatewayTestSecret,
			AccessTokenTTLHours: 10,
			BcryptCost:          4,
		},
	}

	repo := newMemoryUserRepository()
	authService := service.NewAuthService(cfg, repo, nil)
	joinService := service.NewJoinService(cfg, repo, nil)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenCodec(), auth.DefaultPolicy())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Main:           handlers.NewMainHandler(),
		Admin:          handlers.NewAdminHandler(),
		Join:           handlers.NewJoinHandler(joinService),
		Login:          handlers.NewLoginHandler(authService),
		Health:         handlers.NewHealthHandler("auth-gateway", "test", nil, nil),
		AuthMiddleware: authMiddleware,
	})
	return app, authService
}

func formRequest(path string, form url.Values) *gohttp.Request {
	req := httptest.NewRequest(gohttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func readBody(t *testing.T, resp *gohttp.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func joinUser(t *testing.T, app *fiber.App, username, password string) {
	t.Helper()
	resp, err := app.Test(formRequest("/join", credentials(username, password)))
	require.NoError(t, err)
	require.Equal(t, gohttp.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", readBody(t, resp))
}

func loginUser(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, err := app.Test(formRequest("/login", credentials(username, password)))
	require.NoError(t, err)
	require.Equal(t, gohttp.StatusOK, resp.StatusCode)

	header := resp.Header.Get(fiber.HeaderAuthorization)
	require.True(t, strings.HasPrefix(header, "Bearer "), "authorization header %q", header)
	require.Empty(t, readBody(t, resp))
	return strings.TrimPrefix(header, "Bearer ")
}

func TestMainRouteIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Main Controller", readBody(t, resp))
}

func TestJoinAndLoginFlow(t *testing.T) {
	app, authService := newTestApp(t)

	joinUser(t, app, "alice", "password1")
	token := loginUser(t, app, "alice", "password1")

	username, err := authService.TokenCodec().DecodeUsername(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	role, err := authService.TokenCodec().DecodeRole(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestJoinDuplicateStillAnswersOK(t *testing.T) {
	app, _ := newTestApp(t)

	joinUser(t, app, "alice", "password1")
	joinUser(t, app, "alice", "another-password")

	// the original password still logs in; the duplicate attempt changed nothing
	loginUser(t, app, "alice", "password1")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := newTestApp(t)
	joinUser(t, app, "alice", "password1")

	wrongPassword, err := app.Test(formRequest("/login", credentials("alice", "wrong")))
	require.NoError(t, err)
	unknownUser, err := app.Test(formRequest("/login", credentials("nobody", "password1")))
	require.NoError(t, err)

	assert.Equal(t, gohttp.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, gohttp.StatusUnauthorized, unknownUser.StatusCode)
	assert.Empty(t, wrongPassword.Header.Get(fiber.HeaderAuthorization))
	assert.Equal(t, readBody(t, wrongPassword), readBody(t, unknownUser))
}

func TestAdminRouteRequiresAdminToken(t *testing.T) {
	app, authService := newTestApp(t)
	joinUser(t, app, "alice", "password1")

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(gohttp.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin role", func(t *testing.T) {
		token, _, err := authService.TokenCodec().Encode("bob", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(gohttp.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusForbidden, resp.StatusCode)
	})

	t.Run("expired admin token", func(t *testing.T) {
		stale := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			Username: "alice",
			Role:     domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-11 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		signed, err := stale.SignedString([]byte(gatewayTestSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(gohttp.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid admin token", func(t *testing.T) {
		token := loginUser(t, app, "alice", "password1")

		req := httptest.NewRequest(gohttp.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, gohttp.StatusOK, resp.StatusCode)
		assert.Equal(t, "admin Controller", readBody(t, resp))
	})
}

func TestUnknownPathsRequireAuthentication(t *testing.T) {
	app, _ := newTestApp(t)
	joinUser(t, app, "alice", "password1")

	resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusUnauthorized, resp.StatusCode)

	token := loginUser(t, app, "alice", "password1")
	req := httptest.NewRequest(gohttp.MethodGet, "/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode)
}
