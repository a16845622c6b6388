// ABOUTME: HTTP tests driving the fiber app end to end against a temp SQLite store.
// ABOUTME: Covers the session lifecycle, log endpoints, error mapping, photos, and metrics.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/fuerza/internal/report"
	"github.com/harperreed/fuerza/internal/session"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t   *testing.T
	srv *Server
	dir string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(context.Background(), filepath.Join(dir, "fuerza.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := New(Options{Repo: db, PhotoDir: filepath.Join(dir, "perfiles")})
	return &testServer{t: t, srv: srv, dir: dir}
}

func (ts *testServer) do(method, path string, body any, cookie *http.Cookie) *http.Response {
	ts.t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := ts.srv.App().Test(req, -1)
	require.NoError(ts.t, err)
	ts.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testServer) login(email, password string) *http.Cookie {
	ts.t.Helper()
	resp := ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, nil)
	require.Equal(ts.t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	ts.t.Fatal("login did not set a session cookie")
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var ana = map[string]string{"name": "Ana", "email": "ana@x.com", "password": "pw1"}

func TestRegisterLoginLogout(t *testing.T) {
	ts := setupServer(t)

	resp := ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_TAKEN", decode[ErrorResponse](t, resp).Code)

	resp = ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@x.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := ts.login("ana@x.com", "pw1")

	resp = ts.do(http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[meResponse](t, resp)
	require.NotNil(t, me.User)
	assert.Equal(t, "Ana", me.User.Name)
	assert.Equal(t, "ana@x.com", me.User.Email)
	assert.Equal(t, session.ThemeLight, me.Theme)
	assert.Equal(t, session.MenuHome, me.Menu)

	resp = ts.do(http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPrivateRoutesRequireSession(t *testing.T) {
	ts := setupServer(t)

	for _, path := range []string{"/api/me", "/api/summary", "/api/workouts", "/api/reports"} {
		resp := ts.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := ts.do(http.MethodGet, "/api/options", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogAndListEntries(t *testing.T) {
	ts := setupServer(t)
	ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	cookie := ts.login("ana@x.com", "pw1")

	resp := ts.do(http.MethodPost, "/api/workouts", map[string]any{
		"date": "2024-01-01", "type": "Cardio", "duration_minutes": 30, "calories": 250,
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/meals", map[string]any{
		"date": "2024-01-01", "category": "protein", "food": "huevos", "calories": 200,
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodPost, "/api/measurements", map[string]any{
		"date": "2024-01-02", "values": map[string]float64{"weight": 68.5},
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/workouts", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	workouts := decode[[]map[string]any](t, resp)
	require.Len(t, workouts, 1)
	assert.Equal(t, "2024-01-01", workouts[0]["date"])
	assert.Equal(t, "Cardio", workouts[0]["type"])
	assert.EqualValues(t, 30, workouts[0]["duration_minutes"])
	assert.EqualValues(t, 250, workouts[0]["calories"])
	assert.Equal(t, "", workouts[0]["notes"])

	resp = ts.do(http.MethodGet, "/api/measurements/all", nil, cookie)
	measurements := decode[[]map[string]any](t, resp)
	require.Len(t, measurements, 1)
	assert.EqualValues(t, 68.5, measurements[0]["weight"])
	assert.EqualValues(t, 80, measurements[0]["abdomen"])

	resp = ts.do(http.MethodGet, "/api/summary", nil, cookie)
	sum := decode[map[string][]any](t, resp)
	assert.Len(t, sum["workouts"], 1)
	assert.Len(t, sum["meals"], 1)
	assert.Len(t, sum["measurements"], 1)

	resp = ts.do(http.MethodGet, "/api/reports", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	r := decode[report.Reports](t, resp)
	assert.False(t, r.EmptyWorkouts)
	require.Len(t, r.CaloriesByCategory, 1)
	assert.Equal(t, 200, r.CaloriesByCategory[0].Calories)
}

func TestEntriesAreScopedToSessionUser(t *testing.T) {
	ts := setupServer(t)
	ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	ts.do(http.MethodPost, "/api/auth/register", map[string]string{"name": "Beto", "email": "beto@x.com", "password": "pw2"}, nil)

	anaCookie := ts.login("ana@x.com", "pw1")
	betoCookie := ts.login("beto@x.com", "pw2")

	ts.do(http.MethodPost, "/api/workouts", map[string]any{"type": "Fuerza", "duration_minutes": 45}, anaCookie)

	resp := ts.do(http.MethodGet, "/api/workouts", nil, betoCookie)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = ts.do(http.MethodGet, "/api/workouts", nil, anaCookie)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)
}

func TestValidationErrors(t *testing.T) {
	ts := setupServer(t)
	ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	cookie := ts.login("ana@x.com", "pw1")

	tests := []struct {
		name string
		path string
		body any
	}{
		{"unknown workout type", "/api/workouts", map[string]any{"type": "Yoga"}},
		{"bad date", "/api/workouts", map[string]any{"type": "Cardio", "date": "01/02/2024"}},
		{"negative calories", "/api/meals", map[string]any{"category": "fats", "food": "aceite", "calories": -5}},
		{"out of range weight", "/api/measurements", map[string]any{"values": map[string]float64{"weight": 900}}},
		{"unknown measurement", "/api/measurements", map[string]any{"values": map[string]float64{"neck": 40}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(http.MethodPost, tt.path, tt.body, cookie)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", decode[ErrorResponse](t, resp).Code)
		})
	}

	resp := ts.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "x@x.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestThemeAndMenu(t *testing.T) {
	ts := setupServer(t)
	ts.do(http.MethodPost, "/api/auth/register", ana, nil)
	cookie := ts.login("ana@x.com", "pw1")

	resp := ts.do(http.MethodPut, "/api/me/theme", map[string]string{"theme": "oscuro"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ts.do(http.MethodPut, "/api/me/menu", map[string]string{"menu": "reports"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/me", nil, cookie)
	me := decode[meResponse](t, resp)
	assert.Equal(t, session.ThemeDark, me.Theme)
	assert.Equal(t, "reports", me.Menu)

	resp = ts.do(http.MethodPut, "/api/me/menu", map[string]string{"menu": "settings"}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPhotoUploadAndServe(t *testing.T) {
	ts := setupServer(t)
	body := map[string]any{"name": "Ana", "email": "ana@x.com", "password": "pw1", "preset": "avatar2"}
	resp := ts.do(http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[map[string]any](t, resp)
	assert.Equal(t, filepath.Join(ts.dir, "perfiles", "avatar2.png"), user["photo"])

	cookie := ts.login("ana@x.com", "pw1")

	resp = ts.do(http.MethodGet, "/api/me/photo", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, "preset avatars render without files on disk")
	_, err := png.Decode(resp.Body)
	require.NoError(t, err)

	resp = ts.do(http.MethodPut, "/api/me/photo", map[string]any{"photo": pngBytes(t, 300, 150)}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ref := decode[map[string]string](t, resp)["photo"]
	assert.True(t, strings.HasSuffix(ref, "_updated.png"), ref)

	resp = ts.do(http.MethodGet, "/api/me/photo", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	resp = ts.do(http.MethodPut, "/api/me/photo", map[string]any{"photo": pngBytes(t, 5000, 4000)}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, ref, decode[meResponse](t, resp).User.Photo)

	resp = ts.do(http.MethodPut, "/api/me/photo", map[string]any{"photo": []byte("not an image")}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupServer(t)
	ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@x.com", "password": "x"}, nil)

	resp := ts.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `fuerza_auth_attempts_total{action="login",outcome="failure"} 1`)
}

func TestStatusFor(t *testing.T) {
	status, code, msg := statusFor(&storage.StoreError{Op: "insert workout", Err: assert.AnError})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.NotContains(t, msg, assert.AnError.Error())

	status, _, _ = statusFor(&storage.StoreError{Op: "ping", Err: storage.ErrConnection})
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
