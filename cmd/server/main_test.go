package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstorage "github.com/SamPomeroy/workforce-analytics-api/internal/adapters/storage/redis"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/token/jwtcodec"
	"github.com/SamPomeroy/workforce-analytics-api/internal/config"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/services"
)

type pipelineFixture struct {
	router http.Handler
	server *miniredis.Miniredis
	codec  *jwtcodec.Codec
}

func newPipelineFixture(t *testing.T, defaultRule domain.RateLimitRule) *pipelineFixture {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	storage := redisstorage.NewWithClient(client)

	logger := zerolog.Nop()

	limiter, err := services.NewRateLimiterService(storage, logger, 200*time.Millisecond)
	require.NoError(t, err)

	codec, err := jwtcodec.New(jwtcodec.Config{Secret: "test-secret", Expiry: 30 * time.Minute})
	require.NoError(t, err)

	gate, err := services.NewAuthService(codec)
	require.NoError(t, err)

	cfg := config.Config{
		RateLimiter: config.RateLimiterConfig{
			DefaultRule:  defaultRule,
			AuthRule:     domain.RateLimitRule{Requests: 10, Window: time.Minute},
			StoreTimeout: 200 * time.Millisecond,
		},
		Auth: config.AuthConfig{
			SecretKey:   "test-secret",
			TokenExpiry: 30 * time.Minute,
			Clients: map[string]domain.ClientCredential{
				"acme-corp": {Subject: "acme-corp", Secret: "s3cret", Role: domain.RoleEmployer},
			},
		},
	}

	return &pipelineFixture{
		router: newRouter(cfg, logger, storage, limiter, gate, codec),
		server: server,
		codec:  codec,
	}
}

func (f *pipelineFixture) get(path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":52100"
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPipeline_QuotaAccountingAcrossOneWindow(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 2, Window: time.Minute})

	r1 := f.get("/v1/jobs", "203.0.113.7")
	assert.Equal(t, http.StatusOK, r1.Code)
	assert.Equal(t, "2", r1.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", r1.Header().Get("X-RateLimit-Remaining"))

	r2 := f.get("/v1/jobs", "203.0.113.7")
	assert.Equal(t, http.StatusOK, r2.Code)
	assert.Equal(t, "0", r2.Header().Get("X-RateLimit-Remaining"))

	r3 := f.get("/v1/jobs", "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, r3.Code)
	assert.Equal(t, "0", r3.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, r3.Header().Get("X-Request-ID"))

	var body struct {
		Error        string `json:"error"`
		ResetSeconds int    `json:"resetSeconds"`
	}
	require.NoError(t, json.NewDecoder(r3.Body).Decode(&body))
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.LessOrEqual(t, body.ResetSeconds, 60)
	assert.Positive(t, body.ResetSeconds)

	// A minute later the window has expired and the quota is fresh.
	f.server.FastForward(61 * time.Second)

	r4 := f.get("/v1/jobs", "203.0.113.7")
	assert.Equal(t, http.StatusOK, r4.Code)
	assert.Equal(t, "1", r4.Header().Get("X-RateLimit-Remaining"))
}

func TestPipeline_OtherClientsAreNotSerialized(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 1, Window: time.Minute})

	require.Equal(t, http.StatusOK, f.get("/v1/jobs", "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, f.get("/v1/jobs", "203.0.113.7").Code)

	// A different client key still has its own budget.
	assert.Equal(t, http.StatusOK, f.get("/v1/jobs", "203.0.113.8").Code)
}

func TestPipeline_StoreOutageFailsOpen(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 1, Window: time.Minute})
	f.server.Close()

	rec := f.get("/v1/jobs", "203.0.113.7")
	assert.Equal(t, http.StatusOK, rec.Code, "requests must be allowed while the store is unreachable")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPipeline_TokenFlowThroughProtectedRoute(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 100, Window: time.Minute})

	issue := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"subject":"acme-corp","secret":"s3cret"}`))
	issue.RemoteAddr = "203.0.113.7:52100"
	issueRec := httptest.NewRecorder()
	f.router.ServeHTTP(issueRec, issue)
	require.Equal(t, http.StatusOK, issueRec.Code)

	var issued struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(issueRec.Body).Decode(&issued))
	require.NotEmpty(t, issued.Token)

	create := httptest.NewRequest(http.MethodPost, "/v1/jobs", nil)
	create.RemoteAddr = "203.0.113.7:52100"
	create.Header.Set("Authorization", "Bearer "+issued.Token)
	createRec := httptest.NewRecorder()
	f.router.ServeHTTP(createRec, create)

	assert.Equal(t, http.StatusCreated, createRec.Code)
	assert.NotEmpty(t, createRec.Header().Get("X-RateLimit-Remaining"),
		"quota headers must ride along on authorized responses too")
}

func TestPipeline_UserTokenOnEmployerRouteIs403(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 100, Window: time.Minute})

	token, err := f.codec.Encode(domain.Identity{Subject: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code, "wrong role must be 403, never 401")
}

func TestPipeline_UnmatchedRouteReturnsStructured404(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 100, Window: time.Minute})

	rec := f.get("/nope", "203.0.113.7")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not_found", body.Error)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), body.RequestID)
}

func TestPipeline_WrongMethodReturnsStructured405(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 100, Window: time.Minute})

	req := httptest.NewRequest(http.MethodDelete, "/v1/skills", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "method_not_allowed", body.Error)
}

func TestPipeline_AuthClassHasItsOwnBudget(t *testing.T) {
	f := newPipelineFixture(t, domain.RateLimitRule{Requests: 1, Window: time.Minute})

	// Exhaust the default class for this client.
	require.Equal(t, http.StatusOK, f.get("/v1/jobs", "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, f.get("/v1/jobs", "203.0.113.7").Code)

	// The auth class keeps its separate, untouched window.
	issue := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"subject":"acme-corp","secret":"s3cret"}`))
	issue.RemoteAddr = "203.0.113.7:52100"
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, issue)
	assert.Equal(t, http.StatusOK, rec.Code)
}
