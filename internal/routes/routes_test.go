package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guardline/guardline/internal/app"
	"github.com/guardline/guardline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		AppName:       "guardline-test",
		AppEnv:        "test",
		DBDriver:      "sqlite",
		DBConnection:  filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:     "routes-test-secret",
		JWTExpiry:     time.Hour,
		StorageDriver: "local",
		UploadDir:     t.TempDir(),
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close()
	})

	srv := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(srv.Close)

	return srv
}

// noRedirectClient returns responses as-is so redirects can be asserted.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func registerUser(t *testing.T, srv *httptest.Server, email, password string) {
	t.Helper()

	form := url.Values{
		"firstName":       {"Test"},
		"lastName":        {"User"},
		"email":           {email},
		"password":        {password},
		"confirmPassword": {password},
	}

	resp, err := noRedirectClient().PostForm(srv.URL+"/register", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// loginUser returns the session cookie for the given credentials.
func loginUser(t *testing.T, srv *httptest.Server, email, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {password}}
	resp, err := noRedirectClient().PostForm(srv.URL+"/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no auth_token cookie in login response")
	return nil
}

func doForm(t *testing.T, srv *httptest.Server, cookie *http.Cookie, path string, form url.Values) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	return resp
}

func doGet(t *testing.T, srv *httptest.Server, cookie *http.Cookie, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")
	assert.NotEmpty(t, cookie.Value)

	// Wrong password gets the same message as an unknown email
	form := url.Values{"email": {"a@x.com"}, "password": {"wrong"}}
	resp, err := noRedirectClient().PostForm(srv.URL+"/login", form)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeJSON(t, resp)
	wrongPassword := body["error"]

	form = url.Values{"email": {"nobody@x.com"}, "password": {"secret1"}}
	resp, err = noRedirectClient().PostForm(srv.URL+"/login", form)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body = decodeJSON(t, resp)
	assert.Equal(t, wrongPassword, body["error"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")

	form := url.Values{
		"firstName":       {"Test"},
		"lastName":        {"User"},
		"email":           {"A@X.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	}
	resp, err := noRedirectClient().PostForm(srv.URL+"/register", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{"/api/contacts", "/get-voice-notes", "/api/sos-alerts"}
	for _, path := range paths {
		resp := doGet(t, srv, nil, path)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp := doForm(t, srv, nil, "/sos", url.Values{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestContactLifecycle(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")

	// Add a contact
	resp := doForm(t, srv, cookie, "/add-contact", url.Values{
		"name":     {"Mom"},
		"phone":    {"555-123-4567"},
		"relation": {"mother"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()

	// Duplicate (same digits, different formatting) is rejected
	resp = doForm(t, srv, cookie, "/add-contact", url.Values{
		"name":  {"Mother"},
		"phone": {"5551234567"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// List shows the normalized phone
	resp = doGet(t, srv, cookie, "/api/contacts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	contacts := body["contacts"].([]any)
	require.Len(t, contacts, 1)
	contact := contacts[0].(map[string]any)
	assert.Equal(t, "Mom", contact["name"])
	assert.Equal(t, "5551234567", contact["phone"])

	// Another user can't see or delete it
	registerUser(t, srv, "b@x.com", "secret1")
	bCookie := loginUser(t, srv, "b@x.com", "secret1")

	resp = doGet(t, srv, bCookie, "/api/contacts")
	body = decodeJSON(t, resp)
	assert.Empty(t, body["contacts"])

	resp = doForm(t, srv, bCookie, "/delete-contact/"+contact["id"].(string), url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The owner can
	resp = doForm(t, srv, cookie, "/delete-contact/"+contact["id"].(string), url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	resp.Body.Close()
}

func TestSosTrigger(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")

	resp := doForm(t, srv, cookie, "/add-contact", url.Values{
		"name":  {"Mom"},
		"phone": {"5551234567"},
	})
	resp.Body.Close()

	resp = doForm(t, srv, cookie, "/sos", url.Values{
		"location": {"40.7,-74.0"},
		"message":  {"help"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["contacts_alerted"])

	resp = doGet(t, srv, cookie, "/api/sos-alerts")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeJSON(t, resp)
	alerts := body["sos_alerts"].([]any)
	require.Len(t, alerts, 1)
	alert := alerts[0].(map[string]any)
	assert.Equal(t, "active", alert["status"])
}

func TestDashboardSummary(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")

	resp := doForm(t, srv, cookie, "/add-contact", url.Values{
		"name":  {"Mom"},
		"phone": {"5551234567"},
	})
	resp.Body.Close()

	resp = doGet(t, srv, cookie, "/api/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, "Test User", body["name"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, float64(1), body["contact_count"])
}

func uploadVoiceNote(t *testing.T, srv *httptest.Server, cookie *http.Cookie, filename string, payload []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("voice_file", filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/upload-voice-note", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	return resp
}

func TestVoiceNoteLifecycle(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")

	// Unsupported format
	resp := uploadVoiceNote(t, srv, cookie, "note.txt", []byte("not audio"))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()

	// Supported upload
	payload := bytes.Repeat([]byte{0x5A}, 2048+100)
	resp = uploadVoiceNote(t, srv, cookie, "note.mp3", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "note.mp3", body["filename"])
	noteID := body["id"].(string)

	// Listed
	resp = doGet(t, srv, cookie, "/get-voice-notes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeJSON(t, resp)
	require.Len(t, body["voice_notes"].([]any), 1)

	// Playback streams the full payload with the expected headers
	resp = doGet(t, srv, cookie, "/play-voice-note/"+noteID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	streamed, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, payload, streamed)

	// Someone else's session can't reach it
	registerUser(t, srv, "b@x.com", "secret1")
	bCookie := loginUser(t, srv, "b@x.com", "secret1")
	resp = doGet(t, srv, bCookie, "/play-voice-note/"+noteID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Delete, then playback reports not found
	resp = doForm(t, srv, cookie, "/delete-voice-note/"+noteID, url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])

	resp = doGet(t, srv, cookie, "/play-voice-note/"+noteID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "a@x.com", "secret1")
	cookie := loginUser(t, srv, "a@x.com", "secret1")

	resp := doForm(t, srv, cookie, "/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" {
			assert.Empty(t, c.Value)
			return
		}
	}
	t.Fatal("logout did not reset the auth_token cookie")
}
