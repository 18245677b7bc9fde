package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dnsauth/internal/api/dto"
	"dnsauth/internal/config"
	"dnsauth/internal/database"
	"dnsauth/internal/domain"

	"github.com/charmbracelet/log"
)

// Setup prepares the gateway for serving: settings, schema, and optional
// seeds. The request path assumes this ran and never re-enters it.
func Setup() {
	config.ReadSettings()

	if _, err := database.SetupDB(); err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}

	if seedFile := config.SeedFile(); seedFile != "" {
		if err := ApplySeedFile(seedFile); err != nil {
			log.Error("seed file application failed", "file", seedFile, "error", err)
		}
	}
}

// ApplySeedFile upserts whitelist entries, domain configs, and mappings from
// a JSON document. Re-running the same file is harmless.
func ApplySeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seeds dto.SeedFile
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, entry := range seeds.Whitelist {
		if entry.IP == "" {
			return fmt.Errorf("whitelist seed without an ip")
		}
		if err := database.SeedWhitelistEntry(entry.IP, entry.Description); err != nil {
			return fmt.Errorf("seed whitelist entry %s: %w", entry.IP, err)
		}
	}

	for _, policy := range seeds.Policies {
		if policy.ClientIP == "" || policy.Domain == "" {
			return fmt.Errorf("policy seed without client_ip or domain")
		}
		expireTime, err := time.ParseInLocation(dto.ExpireTimeLayout, policy.ExpireTime, time.UTC)
		if err != nil {
			return fmt.Errorf("policy seed for %s: bad expire_time: %w", policy.Domain, err)
		}
		status := domain.ConfigStatusActive
		if policy.Status != nil {
			status = *policy.Status
		}
		if err := database.SeedDomainConfig(policy.ClientIP, policy.Domain, expireTime, status); err != nil {
			return fmt.Errorf("seed domain config %s: %w", policy.Domain, err)
		}
	}

	for _, mapping := range seeds.Mappings {
		if mapping.Domain == "" || mapping.TargetIP == "" {
			return fmt.Errorf("mapping seed without domain or target_ip")
		}
		if err := database.SeedDomainMapping(mapping.Domain, mapping.TargetIP); err != nil {
			return fmt.Errorf("seed domain mapping %s: %w", mapping.Domain, err)
		}
	}

	log.Info("seed file applied",
		"whitelist", len(seeds.Whitelist),
		"policies", len(seeds.Policies),
		"mappings", len(seeds.Mappings))
	return nil
}
