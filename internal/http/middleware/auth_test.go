package middleware

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"nomia/internal/model"
	repoMocks "nomia/internal/repository/mocks"
)

func TestAuthenticate(t *testing.T) {
	user := &model.User{ID: 1, Email: "user@example.com", Name: "Test User"}

	t.Run("bearer token", func(t *testing.T) {
		sessions := new(repoMocks.MockSessionRepository)
		sessions.On("FindUserByToken", mock.Anything, "tok-1").Return(user, nil)

		app := fiber.New()
		app.Get("/me", Authenticate(sessions), func(c *fiber.Ctx) error {
			return c.JSON(UserFromCtx(c))
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer tok-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.User
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("session cookie fallback", func(t *testing.T) {
		sessions := new(repoMocks.MockSessionRepository)
		sessions.On("FindUserByToken", mock.Anything, "cookie-tok").Return(user, nil)

		app := fiber.New()
		app.Get("/me", Authenticate(sessions), func(c *fiber.Ctx) error {
			return c.JSON(UserFromCtx(c))
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-tok"})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		sessions := new(repoMocks.MockSessionRepository)

		app := fiber.New()
		app.Get("/me", Authenticate(sessions), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "You must be logged in to access this resource", body["error"])
		sessions.AssertNotCalled(t, "FindUserByToken", mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		sessions := new(repoMocks.MockSessionRepository)
		sessions.On("FindUserByToken", mock.Anything, "stale").Return(nil, sql.ErrNoRows)

		app := fiber.New()
		app.Get("/me", Authenticate(sessions), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer stale")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		assert.Equal(t, "", bearerToken("Basic abc"))
		assert.Equal(t, "", bearerToken(""))
		assert.Equal(t, "tok", bearerToken("Bearer tok"))
		assert.Equal(t, "tok", bearerToken("Bearer  tok "))
	})
}

func TestUserFromCtx_Anonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, UserFromCtx(c))
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
