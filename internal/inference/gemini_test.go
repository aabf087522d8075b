package inference

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdict/internal/decision"
)

type capturedRequest struct {
	path   string
	apiKey string
	body   map[string]any
}

func geminiServer(t *testing.T, status int, reply string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestGeminiInvoke(t *testing.T) {
	srv, captured := geminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"SUSHI"}]}}]}`)

	g := NewGemini("", srv.URL, StaticCredential("test-key"))
	assert.Equal(t, DefaultGeminiModel, g.Model())

	text, err := g.Invoke(context.Background(), decision.NewRequest("  Pizza or Sushi?  "))
	require.NoError(t, err)
	assert.Equal(t, "SUSHI", text)

	assert.Equal(t, "test-key", captured.apiKey)
	assert.Contains(t, captured.path, DefaultGeminiModel+":generateContent")

	contents, ok := captured.body["contents"].([]any)
	require.True(t, ok, "contents missing from %v", captured.body)
	require.Len(t, contents, 1)
	raw, _ := json.Marshal(contents[0])
	assert.Contains(t, string(raw), `"Pizza or Sushi?"`)

	sys, _ := json.Marshal(captured.body["systemInstruction"])
	assert.Contains(t, string(sys), "deterministic decision engine")

	gen, ok := captured.body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from %v", captured.body)
	assert.EqualValues(t, 0, gen["temperature"])
	assert.EqualValues(t, 100, gen["maxOutputTokens"])
	thinking, ok := gen["thinkingConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, thinking["thinkingBudget"])
}

func TestGeminiInvokeProviderError(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)

	g := NewGemini("gemini-2.5-flash", srv.URL, StaticCredential("bad-key"))
	_, err := g.Invoke(context.Background(), decision.NewRequest("yes or no"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.False(t, strings.HasPrefix(err.Error(), "gemini"), err.Error())
}

func TestGeminiInvokeMissingCredential(t *testing.T) {
	g := NewGemini("", "", StaticCredential(""))
	_, err := g.Invoke(context.Background(), decision.NewRequest("yes or no"))
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, "API key not set", err.Error())
}

func TestEnvCredentialReadsAtCallTime(t *testing.T) {
	cred := EnvCredential("VERDICT_GEMINI_TEST_KEY")

	t.Setenv("VERDICT_GEMINI_TEST_KEY", "")
	assert.Empty(t, cred())

	t.Setenv("VERDICT_GEMINI_TEST_KEY", " late-key ")
	assert.Equal(t, "late-key", cred())
}
