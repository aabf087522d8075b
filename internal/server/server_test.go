package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdict/internal/decision"
	"verdict/internal/middleware"
	"verdict/internal/testutil"
)

// newCookieStackApp mounts the desk middleware behind the production
// encryptcookie and session stack. Both routes answer "<desk id> <status>".
func newCookieStackApp(t *testing.T, secret string, desks *decision.Registry) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveEncryptionKey(secret),
	}))
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	engine := decision.NewEngine(testutil.Answer("SUSHI", nil))
	dm := middleware.NewDeskMiddleware(desks)
	describe := func(c fiber.Ctx) error {
		desk := middleware.DeskFrom(c)
		return c.SendString(desk.ID().String() + " " + desk.State().Status().String())
	}
	app.Post("/decide", dm.Attach, func(c fiber.Ctx) error {
		engine.Decide(context.Background(), middleware.DeskFrom(c), "Pizza or Sushi?")
		return describe(c)
	})
	app.Get("/desk", dm.Attach, describe)
	return app
}

func parseDesk(t *testing.T, body string) (id, status string) {
	t.Helper()
	fields := strings.Fields(body)
	require.Len(t, fields, 2, body)
	return fields[0], fields[1]
}

func TestDeskSurvivesEncryptedCookieReplay(t *testing.T) {
	desks := decision.NewRegistry()
	c := testutil.NewClient(t, newCookieStackApp(t, "test-secret-that-is-long-enough-for-production", desks))

	code, body := c.Do(http.MethodPost, "/decide", "", "")
	require.Equal(t, http.StatusOK, code, body)
	id, status := parseDesk(t, body)
	assert.Equal(t, "decided", status)

	for i := 0; i < 3; i++ {
		code, body = c.Do(http.MethodGet, "/desk", "", "")
		require.Equal(t, http.StatusOK, code, body)
		gotID, gotStatus := parseDesk(t, body)
		assert.Equal(t, id, gotID, "request %d", i)
		assert.Equal(t, "decided", gotStatus, "request %d", i)
	}
	assert.Equal(t, 1, desks.Len())
}

func TestDeskCookieFromAnotherSecretOpensNewDesk(t *testing.T) {
	desks := decision.NewRegistry()
	issuer := testutil.NewClient(t, newCookieStackApp(t, "first-secret-that-is-long-enough-for-production", desks))
	_, body := issuer.Do(http.MethodPost, "/decide", "", "")
	issuedID, _ := parseDesk(t, body)

	// Same registry, different key: the replayed cookie cannot be decrypted.
	other := newCookieStackApp(t, "second-secret-that-is-long-enough-for-production", desks)
	req, err := http.NewRequest(http.MethodGet, "/desk", nil)
	require.NoError(t, err)
	for _, ck := range issuer.Cookies() {
		req.AddCookie(ck)
	}
	resp, err := other.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	id, status := parseDesk(t, string(raw))
	assert.NotEqual(t, issuedID, id)
	assert.Equal(t, "idle", status)
}

func TestDeriveEncryptionKey(t *testing.T) {
	key := deriveEncryptionKey("secret")
	assert.Len(t, key, 44, "base64 of 32 bytes")
	assert.Equal(t, key, deriveEncryptionKey("secret"))
	assert.NotEqual(t, key, deriveEncryptionKey("other"))
}
