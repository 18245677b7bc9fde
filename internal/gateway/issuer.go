package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dnsauth/internal/database"
	"dnsauth/internal/domain"

	"gorm.io/gorm"
)

// Wire values for the request envelope's mode field.
const (
	ModeVerify = "verify"
	ModeFind   = "find"
)

type IssueResult struct {
	ClientIP   string
	Domain     string
	ExpireTime time.Time
}

// IssueGrant handles verify mode: it requires an active config for the exact
// (clientIP, domain) pair and appends one verification row with the config's
// expire_time copied verbatim. Repeat calls append further independent rows,
// each redeemable until its own snapshotted expiry.
func IssueGrant(ctx context.Context, clientIP, domainName string) (IssueResult, error) {
	if domainName == "" {
		return IssueResult{}, fmt.Errorf("%w: domain is required", ErrInvalidRequest)
	}

	cfg, err := database.GetActiveDomainConfig(ctx, clientIP, domainName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return IssueResult{}, fmt.Errorf("%w: no active domain config for %q", ErrNotFound, domainName)
	}
	if err != nil {
		return IssueResult{}, fmt.Errorf("%w: domain config lookup: %v", ErrStorage, err)
	}

	verification := domain.DNSVerification{
		ClientIP:   clientIP,
		Domain:     domainName,
		ExpireTime: cfg.ExpireTime,
		Mode:       ModeVerify,
	}
	if err := database.InsertVerification(ctx, &verification); err != nil {
		return IssueResult{}, fmt.Errorf("%w: verification insert: %v", ErrStorage, err)
	}

	return IssueResult{
		ClientIP:   clientIP,
		Domain:     domainName,
		ExpireTime: cfg.ExpireTime,
	}, nil
}
