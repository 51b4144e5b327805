package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/token/jwtcodec"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
)

func newAuthFixture(t *testing.T) *AuthHandler {
	t.Helper()

	codec, err := jwtcodec.New(jwtcodec.Config{Secret: "test-secret", Expiry: 30 * time.Minute})
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	clients := map[string]domain.ClientCredential{
		"acme-corp": {Subject: "acme-corp", Secret: "s3cret", Role: domain.RoleEmployer},
	}
	return NewAuthHandler(codec, clients, 30*time.Minute)
}

func TestIssueToken_ValidCredential(t *testing.T) {
	handler := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"subject":"acme-corp","secret":"s3cret"}`))
	rec := httptest.NewRecorder()
	handler.IssueToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("expected a token in the response, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"employer"`) {
		t.Fatalf("expected the credential role in the response, got %s", rec.Body.String())
	}
}

func TestIssueToken_WrongSecretIs401(t *testing.T) {
	handler := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"subject":"acme-corp","secret":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.IssueToken(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIssueToken_UnknownSubjectIs401(t *testing.T) {
	handler := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token",
		strings.NewReader(`{"subject":"nobody","secret":"s3cret"}`))
	rec := httptest.NewRecorder()
	handler.IssueToken(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIssueToken_MalformedBodyIs400(t *testing.T) {
	handler := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	handler.IssueToken(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
