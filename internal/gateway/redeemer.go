package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dnsauth/internal/database"

	"gorm.io/gorm"
)

type RedeemResult struct {
	Domain     string
	TargetIP   string
	ExpireTime time.Time
}

// RedeemGrant handles find mode. It is read-only: redemption never consumes
// the grant, so the same row may be redeemed repeatedly until its expiry.
// A grant is expired only when now is strictly after the stored expire_time;
// redemption at the exact expiry instant still succeeds.
func RedeemGrant(ctx context.Context, clientIP, domainName string, now time.Time) (RedeemResult, error) {
	if clientIP == "" {
		return RedeemResult{}, fmt.Errorf("%w: ip is required", ErrInvalidRequest)
	}
	if domainName == "" {
		return RedeemResult{}, fmt.Errorf("%w: dn is required", ErrInvalidRequest)
	}

	verification, err := database.LatestVerification(ctx, clientIP, domainName, ModeVerify)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RedeemResult{}, fmt.Errorf("%w: no verification for %q", ErrNotFound, domainName)
	}
	if err != nil {
		return RedeemResult{}, fmt.Errorf("%w: verification lookup: %v", ErrStorage, err)
	}

	if now.After(verification.ExpireTime) {
		return RedeemResult{}, fmt.Errorf("%w: grant for %q lapsed at %s",
			ErrExpired, domainName, verification.ExpireTime.UTC().Format(time.RFC3339))
	}

	mapping, err := database.GetDomainMapping(ctx, domainName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RedeemResult{}, fmt.Errorf("%w: no mapping for %q", ErrNotFound, domainName)
	}
	if err != nil {
		return RedeemResult{}, fmt.Errorf("%w: mapping lookup: %v", ErrStorage, err)
	}

	return RedeemResult{
		Domain:     domainName,
		TargetIP:   mapping.TargetIP,
		ExpireTime: verification.ExpireTime,
	}, nil
}
