package domain

import "time"

// WhitelistEntry is an administratively managed source address that may reach
// the gateway. The request path only ever reads this table.
type WhitelistEntry struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	// IP holds the exact source address string; no CIDR or wildcard forms.
	IP string `gorm:"size:45;uniqueIndex;not null"`

	Description string    `gorm:"size:255;not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WhitelistEntry) TableName() string {
	return "ip_whitelist"
}
