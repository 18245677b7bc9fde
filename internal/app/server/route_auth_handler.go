package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"dnsauth/internal/api/dto"
	"dnsauth/internal/config"
	"dnsauth/internal/gateway"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// clientIP prefers the X-Real-IP header set by a fronting proxy and falls
// back to the transport peer address with the port stripped.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), config.StoreTimeout())
}

// requireWhitelisted gates the authorization endpoint before the body is
// read. Denied sources get the 403 envelope and nothing else happens.
func requireWhitelisted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := storeContext(r)
		defer cancel()

		sourceIP := clientIP(r)
		err := gateway.Authorize(ctx, sourceIP)
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, gateway.ErrForbidden):
			log.Warn("rejected source outside the whitelist", "ip", sourceIP)
			writeEnvelope(w, http.StatusForbidden, "IP is not whitelisted", nil)
		default:
			log.Error("whitelist lookup failed", "ip", sourceIP, "error", err)
			writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
		}
	})
}

func handleDNSAuth(w http.ResponseWriter, r *http.Request) {
	sourceIP := clientIP(r)
	reqLog := log.With("request_id", uuid.NewString(), "ip", sourceIP)

	var req dto.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()

	switch req.Mode {
	case gateway.ModeVerify:
		result, err := gateway.IssueGrant(ctx, sourceIP, req.Domain)
		if err != nil {
			respondGatewayError(w, reqLog, err)
			return
		}
		reqLog.Info("issued verification grant", "domain", result.Domain,
			"expires", result.ExpireTime.UTC().Format(dto.ExpireTimeLayout))
		writeEnvelope(w, http.StatusOK, "verification recorded", dto.VerifyData{
			IP:         result.ClientIP,
			Domain:     result.Domain,
			ExpireTime: result.ExpireTime.UTC().Format(dto.ExpireTimeLayout),
		})
	case gateway.ModeFind:
		result, err := gateway.RedeemGrant(ctx, req.IP, req.DN, time.Now().UTC())
		if err != nil {
			respondGatewayError(w, reqLog, err)
			return
		}
		reqLog.Info("resolved verification grant", "domain", result.Domain, "target", result.TargetIP)
		writeEnvelope(w, http.StatusOK, "grant resolved", dto.FindData{
			Domain:     result.Domain,
			IP:         result.TargetIP,
			ExpireTime: result.ExpireTime.UTC().Format(dto.ExpireTimeLayout),
		})
	default:
		writeEnvelope(w, http.StatusBadRequest, "missing or unsupported mode", nil)
	}
}

func respondGatewayError(w http.ResponseWriter, reqLog *log.Logger, err error) {
	switch {
	case errors.Is(err, gateway.ErrInvalidRequest):
		writeEnvelope(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, gateway.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, gateway.ErrExpired):
		writeEnvelope(w, http.StatusGone, err.Error(), nil)
	default:
		reqLog.Error("gateway storage failure", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	})
}
