package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dnsauth/internal/api/dto"
	"dnsauth/internal/auth"

	"github.com/charmbracelet/log"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeEnvelope emits the gateway reply envelope; the envelope code doubles
// as the HTTP status.
func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, dto.AuthResponse{Code: code, Message: message, Data: data})
}

// NewRouter wires the gateway surface: the authorization endpoint behind the
// whitelist gate, the open health probe, and the JWT-gated admin seeds.
func NewRouter() *http.ServeMux {
	router := http.NewServeMux()

	router.Handle("POST /dns-auth", requireWhitelisted(http.HandlerFunc(handleDNSAuth)))
	router.HandleFunc("GET /health", handleHealth)

	router.Handle("POST /admin/whitelist", auth.IsAdmin(http.HandlerFunc(seedWhitelist)))
	router.Handle("POST /admin/policies", auth.IsAdmin(http.HandlerFunc(seedPolicy)))
	router.Handle("POST /admin/mappings", auth.IsAdmin(http.HandlerFunc(seedMapping)))
	router.Handle("GET /admin/status", auth.IsAdmin(http.HandlerFunc(adminStatus)))

	return router
}

func OpenRoutes(port int) error {
	server := http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Infof("Starting dnsauth gateway on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
