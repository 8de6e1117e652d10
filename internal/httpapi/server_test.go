package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/metrics"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/schedule"
	"appointment-scheduler/internal/store/memory"
)

const secret = "test-secret"

var now = time.Date(2025, 9, 25, 9, 0, 0, 0, time.UTC)

type client struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newServer(t *testing.T, burst int) *httptest.Server {
	t.Helper()
	return newServerWith(t, burst, nil)
}

func newServerWith(t *testing.T, burst int, configure func(*Config)) *httptest.Server {
	t.Helper()

	st := memory.New()
	v, err := schedule.NewValidator(schedule.DefaultRules())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	log := zap.NewNop()
	appointments := schedule.NewService(st, v, log,
		schedule.WithObserver(metrics.NewRecorder(reg)),
		schedule.WithClock(func() time.Time { return now }),
	)
	accounts := account.NewService(st, st, account.Config{Secret: secret}, log)

	rl := middleware.NewRateLimiter(0.001, burst)
	t.Cleanup(rl.Stop)

	cfg := Config{
		Secret:         secret,
		AllowedOrigins: []string{"http://localhost:3000"},
		AccessTTL:      15 * time.Minute,
	}
	if configure != nil {
		configure(&cfg)
	}
	s := New(appointments, accounts, rl, cfg, log)

	srv := httptest.NewServer(s.Handler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil))
	t.Cleanup(srv.Close)
	return srv
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	return c.doWith(method, path, body, nil)
}

func (c *client) doWith(method, path string, body any, hdr http.Header) *http.Response {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range hdr {
		req.Header[k] = vs
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func signup(t *testing.T, srv *httptest.Server, email string) *client {
	t.Helper()
	c := &client{t: t, srv: srv}
	resp := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": email, "password": "testpass123", "name": "Test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c.token = decodeBody[registerResponse](t, resp).Token
	return c
}

func slot(hours int, length time.Duration) appointmentRequest {
	start := now.Add(time.Duration(hours) * time.Hour)
	return appointmentRequest{Title: "Meeting", StartTime: start, EndTime: start.Add(length)}
}

func TestHealth(t *testing.T) {
	srv := newServer(t, 10)
	resp := (&client{t: t, srv: srv}).do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAppointmentsRequireAuth(t *testing.T) {
	srv := newServer(t, 10)
	c := &client{t: t, srv: srv}

	resp := c.do(http.MethodGet, "/api/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c.token = "garbage"
	resp = c.do(http.MethodGet, "/api/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAppointmentLifecycle(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "life@test.com")

	resp := c.do(http.MethodPost, "/api/appointments", slot(24, time.Hour))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[appointmentView](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/api/appointments/"+created.ID, resp.Header.Get("Location"))

	resp = c.do(http.MethodGet, "/api/appointments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Meeting", decodeBody[appointmentView](t, resp).Title)

	upd := slot(24, 2*time.Hour)
	upd.Title = "Longer meeting"
	resp = c.do(http.MethodPut, "/api/appointments/"+created.ID, upd)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[appointmentView](t, resp)
	assert.Equal(t, "Longer meeting", updated.Title)
	assert.True(t, updated.EndTime.Equal(upd.EndTime))

	resp = c.do(http.MethodDelete, "/api/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = c.do(http.MethodDelete, "/api/appointments/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateValidationErrors(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "val@test.com")

	start := now.Add(time.Hour)
	resp := c.do(http.MethodPost, "/api/appointments", appointmentRequest{
		Title:       "",
		Description: strings.Repeat("x", 51),
		StartTime:   start,
		EndTime:     start.Add(-time.Minute),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[errorResponse](t, resp)
	assert.ElementsMatch(t, []string{
		"title required",
		"description must be at most 50 characters",
		"end must be after start",
	}, body.Errors)
	assert.Len(t, body.Fields, 3)
}

func TestInvalidJSON(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "json@test.com")

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/appointments", strings.NewReader("{"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateConflict(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "conflict@test.com")

	resp := c.do(http.MethodPost, "/api/appointments", slot(10, time.Hour))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	overlapping := slot(10, time.Hour)
	overlapping.StartTime = overlapping.StartTime.Add(30 * time.Minute)
	overlapping.EndTime = overlapping.EndTime.Add(30 * time.Minute)
	resp = c.do(http.MethodPost, "/api/appointments", overlapping)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// back to back is fine
	resp = c.do(http.MethodPost, "/api/appointments", slot(11, time.Hour))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestOtherUsersAppointmentIsNotFound(t *testing.T) {
	srv := newServer(t, 10)
	alice := signup(t, srv, "alice@test.com")
	bob := signup(t, srv, "bob@test.com")

	resp := alice.do(http.MethodPost, "/api/appointments", slot(5, time.Hour))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody[appointmentView](t, resp).ID

	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodGet, "/api/appointments/"+id, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodPut, "/api/appointments/"+id, slot(5, time.Hour)).StatusCode)
	assert.Equal(t, http.StatusNotFound, bob.do(http.MethodDelete, "/api/appointments/"+id, nil).StatusCode)

	// bob can book the same slot
	assert.Equal(t, http.StatusCreated, bob.do(http.MethodPost, "/api/appointments", slot(5, time.Hour)).StatusCode)
}

func TestListFilters(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "list@test.com")

	// now is 2025-09-25 09:00 UTC
	for _, h := range []int{1, 26, 50, 24 * 10} {
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/appointments", slot(h, time.Hour)).StatusCode)
	}

	count := func(path string) int {
		resp := c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		return len(decodeBody[[]appointmentView](t, resp))
	}

	assert.Equal(t, 4, count("/api/appointments"))
	assert.Equal(t, 1, count("/api/appointments?date=2025-09-25"))
	assert.Equal(t, 1, count("/api/appointments?date=2025-09-26"))
	assert.Equal(t, 0, count("/api/appointments?date=2025-09-24"))

	// plain end date is inclusive
	assert.Equal(t, 2, count("/api/appointments?start=2025-09-25&end=2025-09-26"))
	assert.Equal(t, 1, count("/api/appointments?start=2025-09-25T00:00:00Z&end=2025-09-26T00:00:00Z"))

	// upcoming defaults to three days
	assert.Equal(t, 3, count("/api/appointments/upcoming"))
	assert.Equal(t, 1, count("/api/appointments/upcoming?days=1"))
	assert.Equal(t, 4, count("/api/appointments/upcoming?days=30"))
}

func TestListBadQueries(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "bad@test.com")

	for _, path := range []string{
		"/api/appointments?date=25-09-2025",
		"/api/appointments?start=2025-09-25",
		"/api/appointments?start=2025-09-26&end=2025-09-25",
		"/api/appointments?start=yesterday&end=2025-09-25",
		"/api/appointments/upcoming?days=0",
		"/api/appointments/upcoming?days=366",
		"/api/appointments/upcoming?days=abc",
	} {
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, path, nil).StatusCode, path)
	}
}

func TestCalendarExport(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "ics@test.com")
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/appointments", slot(3, time.Hour)).StatusCode)

	resp := c.do(http.MethodGet, "/api/appointments/calendar.ics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VEVENT")
	assert.Contains(t, string(body), "SUMMARY:Meeting")
}

func TestLoginSetsCookies(t *testing.T) {
	srv := newServer(t, 10)
	signup(t, srv, "cookie@test.com")

	c := &client{t: t, srv: srv}
	resp := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "cookie@test.com", "password": "testpass123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := map[string]*http.Cookie{}
	for _, ck := range resp.Cookies() {
		cookies[ck.Name] = ck
	}
	require.Contains(t, cookies, middleware.AccessCookie)
	require.Contains(t, cookies, refreshCookie)
	assert.True(t, cookies[middleware.AccessCookie].HttpOnly)
	assert.True(t, cookies[refreshCookie].HttpOnly)

	body := decodeBody[loginResponse](t, resp)
	assert.Equal(t, "Test", body.Name)
	assert.NotEmpty(t, body.UserID)

	// the cookie alone authenticates
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/appointments", nil)
	require.NoError(t, err)
	req.AddCookie(cookies[middleware.AccessCookie])
	r2, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer r2.Body.Close()
	assert.Equal(t, http.StatusOK, r2.StatusCode)

	// rotate via cookie
	req, err = http.NewRequest(http.MethodPost, srv.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(cookies[refreshCookie])
	r3, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer r3.Body.Close()
	require.Equal(t, http.StatusOK, r3.StatusCode)
	assert.NotEmpty(t, decodeBody[tokenResponse](t, r3).Token)

	// replaying the rotated token fails
	req, err = http.NewRequest(http.MethodPost, srv.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(cookies[refreshCookie])
	r4, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer r4.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, r4.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	srv := newServer(t, 10)
	signup(t, srv, "fail@test.com")
	c := &client{t: t, srv: srv}

	resp := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "fail@test.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = c.do(http.MethodPost, "/auth/register", map[string]string{"email": "fail@test.com", "password": "testpass123", "name": "Again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = c.do(http.MethodPost, "/auth/register", map[string]string{"email": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin429(t *testing.T) {
	srv := newServer(t, 2)
	c := &client{t: t, srv: srv}

	for i := 0; i < 2; i++ {
		resp := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com", "password": "whatever1"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("attempt %d", i))
	}
	resp := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com", "password": "whatever1"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLoginLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	srv := newServer(t, 1)
	c := &client{t: t, srv: srv}
	creds := map[string]string{"email": "a@b.com", "password": "whatever1"}

	var codes []int
	for i := 0; i < 5; i++ {
		hdr := http.Header{}
		hdr.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		hdr.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		codes = append(codes, c.doWith(http.MethodPost, "/auth/login", creds, hdr).StatusCode)
	}
	assert.Equal(t, []int{401, 429, 429, 429, 429}, codes)
}

func TestLoginLimitTrustedProxy(t *testing.T) {
	srv := newServerWith(t, 1, func(cfg *Config) {
		cfg.TrustedProxies = []netip.Prefix{netip.MustParsePrefix("127.0.0.0/8")}
	})
	c := &client{t: t, srv: srv}
	creds := map[string]string{"email": "a@b.com", "password": "whatever1"}

	fwd := func(ip string) http.Header {
		hdr := http.Header{}
		hdr.Set("X-Forwarded-For", ip)
		return hdr
	}
	// each forwarded client gets its own bucket
	assert.Equal(t, http.StatusUnauthorized, c.doWith(http.MethodPost, "/auth/login", creds, fwd("198.51.100.1")).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, c.doWith(http.MethodPost, "/auth/login", creds, fwd("198.51.100.2")).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, c.doWith(http.MethodPost, "/auth/login", creds, fwd("198.51.100.1")).StatusCode)
}

func TestSecureCookies(t *testing.T) {
	srv := newServerWith(t, 10, func(cfg *Config) { cfg.SecureCookies = true })
	c := &client{t: t, srv: srv}
	resp := c.do(http.MethodPost, "/auth/register", map[string]string{"email": "secure@test.com", "password": "testpass123", "name": "S"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotEmpty(t, resp.Cookies())
	for _, ck := range resp.Cookies() {
		assert.True(t, ck.Secure, ck.Name)
	}
}

func TestLogoutRevokesRefresh(t *testing.T) {
	srv := newServer(t, 10)
	c := &client{t: t, srv: srv}
	resp := c.do(http.MethodPost, "/auth/register", map[string]string{"email": "out@test.com", "password": "testpass123", "name": "Out"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c.token = decodeBody[registerResponse](t, resp).Token

	var refresh string
	for _, ck := range resp.Cookies() {
		if ck.Name == refreshCookie {
			refresh = ck.Value
		}
	}
	require.NotEmpty(t, refresh)

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/auth/logout", nil).StatusCode)

	anon := &client{t: t, srv: srv}
	resp = anon.do(http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	srv := newServer(t, 10)
	c := signup(t, srv, "metrics@test.com")
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/appointments", slot(1, time.Hour)).StatusCode)

	resp := c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `appointment_operations_total{op="create",result="ok"} 1`)
}
