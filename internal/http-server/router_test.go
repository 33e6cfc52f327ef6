package httpserver_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	httpserver "cms-api/internal/http-server"
	"cms-api/internal/http-server/middleware/metrics"
	"cms-api/internal/lib/jwt"
	"cms-api/internal/lib/logger/sl"
	articleservice "cms-api/internal/service/article"
	reviewservice "cms-api/internal/service/review"
	userservice "cms-api/internal/service/user"
	"cms-api/internal/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newServer(t *testing.T, m *metrics.Metrics) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := sl.Discard()
	reviews := reviewservice.New(log, st)
	svc := httpserver.Services{
		Articles: articleservice.New(log, st),
		Ratings:  reviews,
		Reviews:  reviews,
		Users:    userservice.New(log, st, secret, time.Hour),
	}

	srv := httptest.NewServer(httpserver.NewRouter(log, svc, jwt.NewAuth(secret), m))
	t.Cleanup(srv.Close)

	return srv
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, nil)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMetricsUseRoutePatterns(t *testing.T) {
	srv := newServer(t, metrics.New())

	for _, path := range []string{"/articles/1", "/articles/2", "/articles"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_ = res.Body.Close()
	}

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `cms_http_requests_total{code="404",method="GET",route="/articles/{id}"} 2`)
	assert.Contains(t, body, `cms_http_requests_total{code="200",method="GET",route="/articles/"} 1`)
	assert.False(t, strings.Contains(body, `route="/articles/1"`))
}

func call(t *testing.T, method, url, body, token string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	return res.StatusCode, payload
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	code, _ := call(t, http.MethodPost, srv.URL+"/users/register", `{"name":"Alice","email":"alice@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, code)

	code, payload := call(t, http.MethodPost, srv.URL+"/users/login", `{"email":"alice@example.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, code)
	token, ok := payload["token"].(string)
	require.True(t, ok)
	return token
}

func TestPublishDateSurvivesReadModifyWrite(t *testing.T) {
	srv := newServer(t, nil)
	token := login(t, srv)

	code, payload := call(t, http.MethodPost, srv.URL+"/articles",
		`{"title":"Test","content":"Some content","publish_date":"2024-03-01"}`, token)
	require.Equal(t, http.StatusCreated, code)
	articleURL := fmt.Sprintf("%s/articles/%d", srv.URL, int64(payload["id"].(float64)))

	code, payload = call(t, http.MethodGet, articleURL, "", "")
	require.Equal(t, http.StatusOK, code)
	art := payload["article"].(map[string]any)
	require.Equal(t, "2024-03-01", art["publish_date"])

	// Send the article back exactly as it was read, with a new title.
	art["title"] = "Edited"
	body, err := json.Marshal(art)
	require.NoError(t, err)

	code, payload = call(t, http.MethodPut, articleURL, string(body), token)
	require.Equal(t, http.StatusOK, code, payload["error"])

	code, payload = call(t, http.MethodGet, articleURL, "", "")
	require.Equal(t, http.StatusOK, code)
	art = payload["article"].(map[string]any)
	assert.Equal(t, "Edited", art["title"])
	assert.Equal(t, "2024-03-01", art["publish_date"])
	assert.Equal(t, "test", art["slug"])

	code, payload = call(t, http.MethodGet, srv.URL+"/articles", "", "")
	require.Equal(t, http.StatusOK, code)
	list := payload["articles"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-01", list[0].(map[string]any)["publish_date"])
}

func TestAnonymousReviewIsUnauthenticated(t *testing.T) {
	srv := newServer(t, nil)

	for _, body := range []string{`{"article_id":1,"comment":"c"}`, `{"rating":3}`, `{"article_id":1,"rating":6.5}`} {
		code, payload := call(t, http.MethodPost, srv.URL+"/reviews", body, "")
		assert.Equal(t, http.StatusUnauthorized, code, body)
		assert.Equal(t, "authentication required", payload["error"], body)
	}
}
