package domain

import "time"

// DomainMapping resolves a domain to its target address. Maintained
// administratively, independent of any verification.
type DomainMapping struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Domain    string    `gorm:"size:255;uniqueIndex;not null"`
	TargetIP  string    `gorm:"size:45;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DomainMapping) TableName() string {
	return "domain_mappings"
}
