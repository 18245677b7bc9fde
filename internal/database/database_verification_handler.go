package database

import (
	"context"
	"fmt"

	"dnsauth/internal/domain"
)

// InsertVerification appends one grant row. Anything other than a single
// affected row is reported as an error so the caller can surface a storage
// failure instead of silently recording nothing.
func InsertVerification(ctx context.Context, verification *domain.DNSVerification) error {
	result := DB.WithContext(ctx).Create(verification)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("verification insert affected %d rows", result.RowsAffected)
	}
	return nil
}

// LatestVerification selects the newest matching grant. Several rows can
// exist for the same pair; the tie-break is most recent created_at, then
// highest id for rows created within the same timestamp granularity.
func LatestVerification(ctx context.Context, clientIP, domainName, mode string) (domain.DNSVerification, error) {
	var verification domain.DNSVerification
	err := DB.WithContext(ctx).
		Where("client_ip = ? AND domain = ? AND mode = ?", clientIP, domainName, mode).
		Order("created_at DESC, id DESC").
		First(&verification).Error
	return verification, err
}

func CountVerifications(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&domain.DNSVerification{}).Count(&count).Error
	return count, err
}
