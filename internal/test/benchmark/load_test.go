package benchmark

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"census-otp-service/internal/app/routes"
	"census-otp-service/internal/domain/services/container"
	"census-otp-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadConfig is read from test_config.json when present.
type loadConfig struct {
	Concurrency int `json:"concurrency"`
	Requests    int `json:"requests"`
}

func readLoadConfig(t *testing.T) loadConfig {
	cfg := loadConfig{Concurrency: 10, Requests: 100}
	if data, err := os.ReadFile("test_config.json"); err == nil {
		require.NoError(t, json.Unmarshal(data, &cfg))
	}
	return cfg
}

func startServer(t *testing.T) (*httptest.Server, *testutil.CaptureSender) {
	t.Helper()
	if testing.Short() {
		t.Skip("load test skipped in -short mode")
	}
	gin.SetMode(gin.TestMode)

	sender := &testutil.CaptureSender{}
	c := container.NewServiceContainer(testutil.SetupTestDB(t), testutil.TestConfig(), sender)
	t.Cleanup(c.Close)

	srv := httptest.NewServer(routes.SetupRouter(c))
	t.Cleanup(srv.Close)
	return srv, sender
}

func TestLoad_GenerateOTP(t *testing.T) {
	srv, sender := startServer(t)
	cfg := readLoadConfig(t)

	runner := NewLoadRunner(srv.URL, cfg.Concurrency, cfg.Requests, "")
	result := runner.RunPOSTEach("/generate_otp", func(i int) interface{} {
		return map[string]string{"mobile_number": fmt.Sprintf("9%09d", i%10)}
	})
	t.Log(result)

	assert.Equal(t, 100.0, result.SuccessRate())
	assert.Equal(t, cfg.Requests, sender.Count())
}

func TestLoad_GetCensusData(t *testing.T) {
	srv, sender := startServer(t)
	cfg := readLoadConfig(t)

	setup := NewLoadRunner(srv.URL, 1, 1, "")
	require.Equal(t, 1, setup.RunPOST("/generate_otp", map[string]string{"mobile_number": "9999999999"}).SuccessCount)
	otp, ok := sender.Last("9999999999")
	require.True(t, ok)

	resp, err := http.Post(srv.URL+"/login", "application/json",
		jsonBody(t, map[string]string{"mobile_number": "9999999999", "otp": otp}))
	require.NoError(t, err)
	defer resp.Body.Close()
	var login struct {
		UserID uint `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	runner := NewLoadRunner(srv.URL, cfg.Concurrency, cfg.Requests, "")
	result := runner.RunGET(fmt.Sprintf("/get_census_data/%d", login.UserID))
	t.Log(result)

	assert.Equal(t, 100.0, result.SuccessRate())
}
