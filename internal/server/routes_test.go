package server

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"verdict/internal/config"
	"verdict/internal/decision"
	"verdict/internal/metrics"
	"verdict/internal/testutil"
)

func newTestServer(t *testing.T, inv decision.Invoker) *testutil.Client {
	t.Helper()
	cfg := &config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:3000",
		ViewsDir:      "../../views",
		StaticDir:     "../../static",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		Provider:      config.ProviderGemini,
		CredentialEnv: "VERDICT_ROUTES_TEST_KEY",
		SiteTitle:     "Autonomous Decision Engine",
		SiteFooter:    "Deterministic • Authoritative • Precise",
	}

	reg := prometheus.NewRegistry()
	desks := decision.NewRegistry()
	engine := decision.NewEngine(inv, decision.WithObserver(metrics.New(reg, desks)))

	srv := New(cfg, zap.NewNop())
	srv.RegisterRoutes(engine, desks, reg)
	return testutil.NewClient(t, srv.App)
}

func TestRoutesEndToEnd(t *testing.T) {
	s := newTestServer(t, testutil.Answer("SUSHI", nil))

	status, body := s.Do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-status="idle"`)
	assert.Contains(t, body, "Deterministic • Authoritative • Precise")

	status, body = s.Do(http.MethodPost, "/api/v1/decide", "application/json", `{"query":"Pizza or Sushi?","wait":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","data":{"query":"Pizza or Sushi?","status":"decided","decision":"SUSHI"}}`, body)

	// The HTML screen sees the same desk.
	_, body = s.Do(http.MethodGet, "/desk", "", "")
	assert.Contains(t, body, `data-status="decided"`)
	assert.Contains(t, body, "SUSHI")

	_, body = s.Do(http.MethodGet, "/metrics", "", "")
	assert.Contains(t, body, `verdict_decisions_total{outcome="decided"} 1`)
	assert.Contains(t, body, `verdict_desks{status="decided"} 1`)
}

func TestRoutesProbesAndStatic(t *testing.T) {
	s := newTestServer(t, testutil.Answer("", nil))

	status, _ := s.Do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)

	t.Setenv("VERDICT_ROUTES_TEST_KEY", "")
	status, _ = s.Do(http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, body := s.Do(http.MethodGet, "/static/app.css", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, ".verdict")
}

func TestErrorHandler(t *testing.T) {
	s := newTestServer(t, testutil.Answer("", nil))

	status, body := s.Do(http.MethodGet, "/api/v1/missing", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, `"status":"error"`)

	status, body = s.Do(http.MethodGet, "/missing", "", "", "HX-Request", "true")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<section id="desk"`)
	assert.Contains(t, body, `data-status="error"`)
	assert.Contains(t, body, `class="fault"`)
	assert.Contains(t, body, `hx-post="/reset"`)

	_, body = s.Do(http.MethodPost, "/reset", "", "", "HX-Request", "true")
	assert.Contains(t, body, `data-status="idle"`)

	status, body = s.Do(http.MethodGet, "/missing", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "System Reset")
}

func TestBuildTLSConfig(t *testing.T) {
	tc, err := buildTLSConfig(&config.Config{TLSEnabled: true})
	require.NoError(t, err)
	assert.Nil(t, tc.ClientCAs)

	_, err = buildTLSConfig(&config.Config{TLSEnabled: true, TLSCAFile: "does-not-exist.pem"})
	assert.Error(t, err)
}
