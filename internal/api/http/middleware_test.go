package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/spec-kit/society-portal/pkg/util"
)

func TestFailedRequestIsLoggedWithWireStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	app := fiber.New()
	RegisterMiddlewares(app, logger, 0)
	app.Get("/bills/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("bill", nil)
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/bills/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, nethttp.StatusNotFound, entries[0].ContextMap()["status"],
		"logged status must match the status written to the wire")
}

func TestSuccessfulRequestIsLoggedWithWireStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	app := fiber.New()
	RegisterMiddlewares(app, logger, 0)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, nethttp.StatusOK, entries[0].ContextMap()["status"])
}
