package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dnsauth/internal/api/dto"
	"dnsauth/internal/database"
	"dnsauth/internal/domain"

	"gorm.io/driver/sqlite"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupServerTest(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1",
		strings.ReplaceAll(t.Name(), "/", "_"))
	if _, err := database.SetupDB(database.WithDialector(sqlite.Open(dsn))); err != nil {
		t.Fatalf("set up test database: %v", err)
	}

	t.Cleanup(func() {
		database.DB = nil
	})

	return NewRouter()
}

func seedScenario(t *testing.T, whitelistIP string) {
	t.Helper()

	if whitelistIP != "" {
		if err := database.SeedWhitelistEntry(whitelistIP, "test client"); err != nil {
			t.Fatalf("seed whitelist: %v", err)
		}
	}

	expire := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := database.SeedDomainConfig("10.0.0.1", "a.example", expire, domain.ConfigStatusActive); err != nil {
		t.Fatalf("seed domain config: %v", err)
	}
	if err := database.SeedDomainMapping("a.example", "203.0.113.5"); err != nil {
		t.Fatalf("seed domain mapping: %v", err)
	}
}

func postAuth(t *testing.T, router http.Handler, sourceIP, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/dns-auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sourceIP != "" {
		req.Header.Set("X-Real-IP", sourceIP)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestVerifyThenFindFlow(t *testing.T) {
	router := setupServerTest(t)
	seedScenario(t, "10.0.0.1")

	status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"verify","domain":"a.example"}`)
	if status != http.StatusOK || resp.Code != http.StatusOK {
		t.Fatalf("verify returned status %d code %d (%s), want 200", status, resp.Code, resp.Message)
	}

	var verifyData dto.VerifyData
	if err := json.Unmarshal(resp.Data, &verifyData); err != nil {
		t.Fatalf("decode verify data: %v", err)
	}
	if verifyData.IP != "10.0.0.1" {
		t.Fatalf("verify ip = %q, want 10.0.0.1", verifyData.IP)
	}
	if verifyData.Domain != "a.example" {
		t.Fatalf("verify domain = %q, want a.example", verifyData.Domain)
	}
	if verifyData.ExpireTime != "2099-01-01 00:00:00" {
		t.Fatalf("verify expire_time = %q, want 2099-01-01 00:00:00", verifyData.ExpireTime)
	}

	status, resp = postAuth(t, router, "10.0.0.1", `{"mode":"find","ip":"10.0.0.1","dn":"a.example"}`)
	if status != http.StatusOK || resp.Code != http.StatusOK {
		t.Fatalf("find returned status %d code %d (%s), want 200", status, resp.Code, resp.Message)
	}

	var findData dto.FindData
	if err := json.Unmarshal(resp.Data, &findData); err != nil {
		t.Fatalf("decode find data: %v", err)
	}
	if findData.IP != "203.0.113.5" {
		t.Fatalf("find ip = %q, want the mapped target 203.0.113.5", findData.IP)
	}
	if findData.Domain != "a.example" {
		t.Fatalf("find domain = %q, want a.example", findData.Domain)
	}
	if findData.ExpireTime != "2099-01-01 00:00:00" {
		t.Fatalf("find expire_time = %q, want 2099-01-01 00:00:00", findData.ExpireTime)
	}
}

func TestNonWhitelistedSourceIsRejectedBeforeParsing(t *testing.T) {
	router := setupServerTest(t)
	seedScenario(t, "10.0.0.1")

	for _, body := range []string{
		`{"mode":"verify","domain":"a.example"}`,
		`{"mode":"find","ip":"10.0.0.1","dn":"a.example"}`,
		`this is not even json`,
	} {
		status, resp := postAuth(t, router, "192.0.2.99", body)
		if status != http.StatusForbidden || resp.Code != http.StatusForbidden {
			t.Fatalf("body %q: status %d code %d, want 403", body, status, resp.Code)
		}
	}
}

func TestMalformedBodyAndMode(t *testing.T) {
	router := setupServerTest(t)
	seedScenario(t, "10.0.0.1")

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"mode":`},
		{"missing mode", `{"domain":"a.example"}`},
		{"unknown mode", `{"mode":"renew","domain":"a.example"}`},
		{"verify without domain", `{"mode":"verify"}`},
		{"find without ip", `{"mode":"find","dn":"a.example"}`},
		{"find without dn", `{"mode":"find","ip":"10.0.0.1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := postAuth(t, router, "10.0.0.1", tc.body)
			if status != http.StatusBadRequest || resp.Code != http.StatusBadRequest {
				t.Fatalf("status %d code %d (%s), want 400", status, resp.Code, resp.Message)
			}
		})
	}
}

func TestVerifyWithoutConfigReturnsNotFound(t *testing.T) {
	router := setupServerTest(t)
	seedScenario(t, "10.0.0.2")

	// 10.0.0.2 is whitelisted but has no domain config of its own.
	status, resp := postAuth(t, router, "10.0.0.2", `{"mode":"verify","domain":"a.example"}`)
	if status != http.StatusNotFound || resp.Code != http.StatusNotFound {
		t.Fatalf("status %d code %d (%s), want 404", status, resp.Code, resp.Message)
	}
}

func TestFindWithoutMappingReturnsNotFound(t *testing.T) {
	router := setupServerTest(t)

	if err := database.SeedWhitelistEntry("10.0.0.1", ""); err != nil {
		t.Fatalf("seed whitelist: %v", err)
	}
	expire := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := database.SeedDomainConfig("10.0.0.1", "b.example", expire, domain.ConfigStatusActive); err != nil {
		t.Fatalf("seed domain config: %v", err)
	}

	if status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"verify","domain":"b.example"}`); status != http.StatusOK {
		t.Fatalf("verify returned %d (%s), want 200", status, resp.Message)
	}

	status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"find","ip":"10.0.0.1","dn":"b.example"}`)
	if status != http.StatusNotFound || resp.Code != http.StatusNotFound {
		t.Fatalf("status %d code %d (%s), want 404", status, resp.Code, resp.Message)
	}
}

func TestDisabledConfigReturnsNotFound(t *testing.T) {
	router := setupServerTest(t)

	if err := database.SeedWhitelistEntry("10.0.0.1", ""); err != nil {
		t.Fatalf("seed whitelist: %v", err)
	}
	expire := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := database.SeedDomainConfig("10.0.0.1", "a.example", expire, 0); err != nil {
		t.Fatalf("seed disabled config: %v", err)
	}

	status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"verify","domain":"a.example"}`)
	if status != http.StatusNotFound || resp.Code != http.StatusNotFound {
		t.Fatalf("status %d code %d (%s), want 404", status, resp.Code, resp.Message)
	}
}

func TestExpiredGrantGetsItsOwnCode(t *testing.T) {
	router := setupServerTest(t)

	if err := database.SeedWhitelistEntry("10.0.0.1", ""); err != nil {
		t.Fatalf("seed whitelist: %v", err)
	}
	expire := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := database.SeedDomainConfig("10.0.0.1", "old.example", expire, domain.ConfigStatusActive); err != nil {
		t.Fatalf("seed domain config: %v", err)
	}
	if err := database.SeedDomainMapping("old.example", "203.0.113.5"); err != nil {
		t.Fatalf("seed mapping: %v", err)
	}

	// Issuance does not check expiry; only redemption does.
	if status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"verify","domain":"old.example"}`); status != http.StatusOK {
		t.Fatalf("verify returned %d (%s), want 200", status, resp.Message)
	}

	status, resp := postAuth(t, router, "10.0.0.1", `{"mode":"find","ip":"10.0.0.1","dn":"old.example"}`)
	if status != http.StatusGone || resp.Code != http.StatusGone {
		t.Fatalf("status %d code %d (%s), want 410", status, resp.Code, resp.Message)
	}
}

func TestHealthProbe(t *testing.T) {
	router := setupServerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	var health dto.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("health status field = %q, want ok", health.Status)
	}
	if health.Timestamp == 0 {
		t.Fatal("health timestamp is zero")
	}
}

func TestClientIPPrefersRealIPHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/dns-auth", nil)
	req.RemoteAddr = "192.0.2.10:52431"

	if got := clientIP(req); got != "192.0.2.10" {
		t.Fatalf("clientIP = %q, want the peer address 192.0.2.10", got)
	}

	req.Header.Set("X-Real-IP", "10.0.0.1")
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("clientIP = %q, want the forwarded 10.0.0.1", got)
	}
}
