package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/auth"
	"fundraiser-display/internal/config"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
	"fundraiser-display/internal/server/response"
	"fundraiser-display/internal/storage/memory"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		APIPrefix:          "/api",
		StorageDriver:      config.DriverMemory,
		CORSAllowedOrigins: []string{"*"},
		ShutdownTimeout:    time.Second,
	}
	if mutate != nil {
		mutate(cfg)
	}
	logger := zerolog.Nop()
	ts := httptest.NewServer(New(cfg, memory.New(), &logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, header http.Header) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestGoalLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)
	base := ts.URL + "/api"

	resp := do(t, http.MethodGet, base+"/goals", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []goals.Goal{}, decode[[]goals.Goal](t, resp))

	resp = do(t, http.MethodPost, base+"/goals", `{"name":"A","targetPercentage":40}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	a := decode[goals.Goal](t, resp)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 40, a.TargetPercentage)
	assert.Positive(t, a.ID)

	// Numeric strings are accepted too.
	resp = do(t, http.MethodPost, base+"/goals", `{"name":"B","targetPercentage":"60"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	b := decode[goals.Goal](t, resp)

	resp = do(t, http.MethodDelete, fmt.Sprintf("%s/goals/%d", base, a.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decode[map[string]any](t, resp)
	assert.Equal(t, true, deleted["deleted"])
	assert.EqualValues(t, a.ID, deleted["id"])

	resp = do(t, http.MethodGet, base+"/goals", "", nil)
	assert.Equal(t, []goals.Goal{b}, decode[[]goals.Goal](t, resp))

	resp = do(t, http.MethodDelete, fmt.Sprintf("%s/goals/%d", base, a.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[response.ErrorBody](t, resp).Error.Code)
}

func TestCreateGoalValidation(t *testing.T) {
	ts := newTestServer(t, nil)
	url := ts.URL + "/api/goals"

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"malformed", `{"name":`, http.StatusBadRequest, ""},
		{"missing name", `{"targetPercentage":10}`, http.StatusUnprocessableEntity, "name"},
		{"blank name", `{"name":"   ","targetPercentage":10}`, http.StatusUnprocessableEntity, "name"},
		{"long name", `{"name":"` + strings.Repeat("x", 256) + `","targetPercentage":10}`, http.StatusUnprocessableEntity, "name"},
		{"missing target", `{"name":"A"}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"null target", `{"name":"A","targetPercentage":null}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"non numeric", `{"name":"A","targetPercentage":"lots"}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"boolean", `{"name":"A","targetPercentage":true}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"fraction", `{"name":"A","targetPercentage":12.5}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"too high", `{"name":"A","targetPercentage":101}`, http.StatusUnprocessableEntity, "targetPercentage"},
		{"negative", `{"name":"A","targetPercentage":-1}`, http.StatusUnprocessableEntity, "targetPercentage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, url, tt.body, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[response.ErrorBody](t, resp)
			require.NotNil(t, body.Error)
			if tt.field != "" {
				assert.Equal(t, tt.field, body.Error.Details)
			}
		})
	}

	resp := do(t, http.MethodGet, url, "", nil)
	assert.Empty(t, decode[[]goals.Goal](t, resp), "rejected requests must not persist")
}

func TestDeleteGoalBadID(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, id := range []string{"abc", "0", "-3"} {
		resp := do(t, http.MethodDelete, ts.URL+"/api/goals/"+id, "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "id %q", id)
	}
}

func TestPercentage(t *testing.T) {
	ts := newTestServer(t, nil)
	base := ts.URL + "/api/percentage"

	resp := do(t, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, percentage.Value{Percentage: 0}, decode[percentage.Value](t, resp))

	for _, v := range []int{0, 50, 100} {
		resp = do(t, http.MethodPost, fmt.Sprintf("%s/%d", base, v), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, v, decode[percentage.Value](t, resp).Percentage)

		resp = do(t, http.MethodGet, base, "", nil)
		assert.Equal(t, v, decode[percentage.Value](t, resp).Percentage)
	}

	for _, bad := range []string{"101", "-1", "abc", "12.5"} {
		resp = do(t, http.MethodPost, base+"/"+bad, "", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "value %q", bad)
	}

	resp = do(t, http.MethodGet, base, "", nil)
	assert.Equal(t, 100, decode[percentage.Value](t, resp).Percentage)
}

func TestRoutingErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/goals"},
		{http.MethodPatch, "/api/goals"},
		{http.MethodGet, "/api/goals/1"},
		{http.MethodDelete, "/api/percentage"},
		{http.MethodPut, "/api/percentage/5"},
	} {
		resp = do(t, tc.method, ts.URL+tc.path, `{}`, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decode[response.ErrorBody](t, resp).Error.Code)
	}

	resp = do(t, http.MethodGet, ts.URL+"/goals", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "routes live under the prefix")
}

func TestEmptyPrefix(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.APIPrefix = "" })
	resp := do(t, http.MethodGet, ts.URL+"/goals", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodOptions, ts.URL+"/api/goals/1", "", http.Header{
		"Origin":                        {"https://display.example"},
		"Access-Control-Request-Method": {"DELETE"},
	})
	assert.Less(t, resp.StatusCode, 300)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestWritesRequireAdminTokenWhenConfigured(t *testing.T) {
	const secret = "s3cret"
	ts := newTestServer(t, func(c *config.Config) { c.AdminJWTSecret = secret })
	base := ts.URL + "/api"

	resp := do(t, http.MethodPost, base+"/percentage/10", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, http.MethodPost, base+"/goals", `{"name":"A","targetPercentage":1}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, http.MethodDelete, base+"/goals/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Reads stay public.
	resp = do(t, http.MethodGet, base+"/percentage", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tok, err := auth.GenerateToken([]byte(secret), auth.AdminSubject, time.Minute)
	require.NoError(t, err)
	resp = do(t, http.MethodPost, base+"/percentage/10", "", http.Header{"Authorization": {"Bearer " + tok}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := &config.Config{APIPrefix: "/api", ShutdownTimeout: time.Second, CORSAllowedOrigins: []string{"*"}}
	logger := zerolog.Nop()
	srv := New(cfg, memory.New(), &logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
