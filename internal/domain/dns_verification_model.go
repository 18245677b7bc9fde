package domain

import "time"

// DNSVerification is one issued grant. Rows are append-only: the gateway never
// updates or deletes them, and ExpireTime is a snapshot of the config at
// issuance, never re-read afterwards.
type DNSVerification struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ClientIP   string    `gorm:"size:45;not null;index:idx_verification_ip_domain"`
	Domain     string    `gorm:"size:255;not null;index:idx_verification_ip_domain"`
	ExpireTime time.Time `gorm:"not null"`
	Mode       string    `gorm:"size:20;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DNSVerification) TableName() string {
	return "dns_verifications"
}
