package gateway

import (
	"context"
	"fmt"

	"dnsauth/internal/database"
)

// Authorize returns nil when sourceIP is whitelisted, ErrForbidden when it is
// not, and ErrStorage when the lookup itself failed. Lookup is an exact match
// against the whitelist table; a failing store denies by default.
func Authorize(ctx context.Context, sourceIP string) error {
	allowed, err := database.IsWhitelisted(ctx, sourceIP)
	if err != nil {
		return fmt.Errorf("%w: whitelist lookup: %v", ErrStorage, err)
	}
	if !allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, sourceIP)
	}
	return nil
}
