package database

import (
	"context"

	"dnsauth/internal/domain"

	"gorm.io/gorm/clause"
)

func GetDomainMapping(ctx context.Context, domainName string) (domain.DomainMapping, error) {
	var mapping domain.DomainMapping
	err := DB.WithContext(ctx).
		Where("domain = ?", domainName).
		First(&mapping).Error
	return mapping, err
}

// SeedDomainMapping upserts on domain, replacing the target address.
func SeedDomainMapping(domainName, targetIP string) error {
	mapping := domain.DomainMapping{Domain: domainName, TargetIP: targetIP}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "domain"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_ip", "updated_at"}),
	}).Create(&mapping).Error
}

func CountDomainMappings(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&domain.DomainMapping{}).Count(&count).Error
	return count, err
}
