package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bloxmarket/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppServesLiveness(t *testing.T) {
	s := &Server{config: &config.Config{
		Port:      "0",
		JWTSecret: testJWTSecret,
		UploadDir: t.TempDir(),
	}}

	app := s.newApp()
	require.NotNil(t, app)
	assert.Equal(t, app, s.app, "Shutdown must be able to reach the running app")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
