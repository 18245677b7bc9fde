package server

import (
	"encoding/json"
	"net/http"
	"time"

	"dnsauth/internal/api/dto"
	"dnsauth/internal/database"
	"dnsauth/internal/domain"
	jobruntime "dnsauth/internal/jobs/runtime"
	"dnsauth/internal/support"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

func seedWhitelist(w http.ResponseWriter, r *http.Request) {
	var seed dto.WhitelistSeed
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if seed.IP == "" {
		writeEnvelope(w, http.StatusBadRequest, "ip is required", nil)
		return
	}

	if err := database.SeedWhitelistEntry(seed.IP, seed.Description); err != nil {
		log.Error("whitelist seed failed", "ip", seed.IP, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
		return
	}

	log.Info("whitelist entry seeded", "ip", seed.IP)
	writeEnvelope(w, http.StatusOK, "whitelist entry saved", nil)
}

func seedPolicy(w http.ResponseWriter, r *http.Request) {
	var seed dto.PolicySeed
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if seed.ClientIP == "" || seed.Domain == "" || seed.ExpireTime == "" {
		writeEnvelope(w, http.StatusBadRequest, "client_ip, domain and expire_time are required", nil)
		return
	}

	expireTime, err := time.ParseInLocation(dto.ExpireTimeLayout, seed.ExpireTime, time.UTC)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "expire_time must use the format "+dto.ExpireTimeLayout, nil)
		return
	}

	status := domain.ConfigStatusActive
	if seed.Status != nil {
		status = *seed.Status
	}

	if err := database.SeedDomainConfig(seed.ClientIP, seed.Domain, expireTime, status); err != nil {
		log.Error("domain config seed failed", "domain", seed.Domain, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
		return
	}

	log.Info("domain config seeded", "client_ip", seed.ClientIP, "domain", seed.Domain, "status", status)
	writeEnvelope(w, http.StatusOK, "domain config saved", nil)
}

func seedMapping(w http.ResponseWriter, r *http.Request) {
	var seed dto.MappingSeed
	if err := json.NewDecoder(r.Body).Decode(&seed); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	if seed.Domain == "" || seed.TargetIP == "" {
		writeEnvelope(w, http.StatusBadRequest, "domain and target_ip are required", nil)
		return
	}

	if err := database.SeedDomainMapping(seed.Domain, seed.TargetIP); err != nil {
		log.Error("domain mapping seed failed", "domain", seed.Domain, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
		return
	}

	log.Info("domain mapping seeded", "domain", seed.Domain, "target", seed.TargetIP)
	writeEnvelope(w, http.StatusOK, "domain mapping saved", nil)
}

func adminStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()

	var status dto.AdminStatus
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		status.WhitelistEntries, err = database.CountWhitelistEntries(gctx)
		return err
	})
	g.Go(func() (err error) {
		status.DomainConfigs, err = database.CountDomainConfigs(gctx)
		return err
	})
	g.Go(func() (err error) {
		status.Verifications, err = database.CountVerifications(gctx)
		return err
	})
	g.Go(func() (err error) {
		status.DomainMappings, err = database.CountDomainMappings(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("status counts failed", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "storage failure", nil)
		return
	}

	if client, err := support.GetRedisClient(); err == nil {
		if instances, err := jobruntime.CountActiveInstances(ctx, client); err == nil {
			status.ActiveInstances = instances
		}
	}

	writeEnvelope(w, http.StatusOK, "ok", status)
}
