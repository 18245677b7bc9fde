package dto

// Seed payloads for the administrative surface and the bootstrap seed file.

type WhitelistSeed struct {
	IP          string `json:"ip"`
	Description string `json:"description,omitempty"`
}

type PolicySeed struct {
	ClientIP   string `json:"client_ip"`
	Domain     string `json:"domain"`
	ExpireTime string `json:"expire_time"`
	// Status defaults to active (1) when omitted.
	Status *int `json:"status,omitempty"`
}

type MappingSeed struct {
	Domain   string `json:"domain"`
	TargetIP string `json:"target_ip"`
}

// SeedFile is the optional bootstrap document referenced by SEED_FILE.
type SeedFile struct {
	Whitelist []WhitelistSeed `json:"whitelist,omitempty"`
	Policies  []PolicySeed    `json:"policies,omitempty"`
	Mappings  []MappingSeed   `json:"mappings,omitempty"`
}

// AdminStatus summarizes table sizes plus, when redis is reachable, how many
// gateway instances are heartbeating.
type AdminStatus struct {
	WhitelistEntries int64 `json:"whitelist_entries"`
	DomainConfigs    int64 `json:"domain_configs"`
	Verifications    int64 `json:"verifications"`
	DomainMappings   int64 `json:"domain_mappings"`
	ActiveInstances  int   `json:"active_instances,omitempty"`
}
