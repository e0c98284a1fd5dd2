package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondVia(t *testing.T, status int, err error) (int, map[string]any, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil))
	require.NoError(t, reqErr)
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body, string(raw)
}

func TestRespondWithError_InternalDetailStaysServerSide(t *testing.T) {
	dbErr := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
	status, body, raw := respondVia(t, fiber.StatusInternalServerError, NewInternalError(dbErr))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])

	_, hasDetails := body["details"]
	assert.False(t, hasDetails, "wrapped persistence error must not reach the caller")
	assert.NotContains(t, raw, "pq:")
	assert.NotContains(t, raw, "users_email_key")
}

func TestRespondWithError_ValidationMessagePassesThrough(t *testing.T) {
	status, body, _ := respondVia(t, fiber.StatusBadRequest, NewValidationError("Bio too long (max 500 characters)"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bio too long (max 500 characters)", body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestRespondWithError_PlainError(t *testing.T) {
	status, body, _ := respondVia(t, fiber.StatusBadRequest, errors.New("plain failure"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "plain failure", body["error"])
}
