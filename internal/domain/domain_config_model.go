package domain

import "time"

// ConfigStatusActive marks a DomainConfig that may have verifications issued
// against it. Any other status disables the pair without deleting the row.
const ConfigStatusActive = 1

// DomainConfig is the administratively granted right for a client address to
// request verifications for a domain. One row per (client_ip, domain) pair.
type DomainConfig struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ClientIP   string    `gorm:"size:45;not null;uniqueIndex:idx_config_ip_domain"`
	Domain     string    `gorm:"size:255;not null;uniqueIndex:idx_config_ip_domain"`
	ExpireTime time.Time `gorm:"not null"`
	Status     int       `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DomainConfig) TableName() string {
	return "domain_configs"
}
