package database

import (
	"context"

	"dnsauth/internal/domain"

	"gorm.io/gorm/clause"
)

// IsWhitelisted reports whether the exact source address has a whitelist row.
func IsWhitelisted(ctx context.Context, ip string) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).
		Model(&domain.WhitelistEntry{}).
		Where("ip = ?", ip).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedWhitelistEntry inserts a whitelist row, leaving an existing row for the
// same address untouched.
func SeedWhitelistEntry(ip, description string) error {
	entry := domain.WhitelistEntry{IP: ip, Description: description}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}},
		DoNothing: true,
	}).Create(&entry).Error
}

func GetWhitelistEntries() ([]domain.WhitelistEntry, error) {
	var entries []domain.WhitelistEntry
	if err := DB.Order("ip").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func CountWhitelistEntries(ctx context.Context) (int64, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&domain.WhitelistEntry{}).Count(&count).Error
	return count, err
}
