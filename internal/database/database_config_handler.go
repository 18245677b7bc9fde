package database

import (
	"context"
	"time"

	"dnsauth/internal/domain"

	"gorm.io/gorm/clause"
)

// GetActiveDomainConfig returns the config for the exact (clientIP, domainName)
// pair, but only while its status is active. Disabled rows behave as absent.
func GetActiveDomainConfig(ctx context.Context, clientIP, domainName string) (domain.DomainConfig, error) {
	var cfg domain.DomainConfig
	err := DB.WithContext(ctx).
		Where("client_ip = ? AND domain = ? AND status = ?", clientIP, domainName, domain.ConfigStatusActive).
		First(&cfg).Error
	return cfg, err
}

// SeedDomainConfig upserts on (client_ip, domain), replacing expire_time and
// status. Already-issued verifications keep their snapshotted expiry.
func SeedDomainConfig(clientIP, domainName string, expireTime time.Time, status int) error {
	cfg := domain.DomainConfig{
		ClientIP:   clientIP,
		Domain:     domainName,
		ExpireTime: expireTime,
		Status:     status,
	}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_ip"}, {Name: "domain"}},
		DoUpdates: clause.AssignmentColumns([]string{"expire_time", "status"}),
	}).Create(&cfg).Error
}

func CountDomainConfigs(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&domain.DomainConfig{}).Count(&count).Error
	return count, err
}
