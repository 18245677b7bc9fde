package dto

// AuthRequest is the envelope posted to /dns-auth. Field presence depends on
// the mode: verify carries Domain, find carries IP and DN.
type AuthRequest struct {
	Mode   string `json:"mode"`
	Domain string `json:"domain,omitempty"`
	IP     string `json:"ip,omitempty"`
	DN     string `json:"dn,omitempty"`
}
