package dto

// ExpireTimeLayout is the wire format for expire_time values. Timestamps are
// interpreted as UTC on both ends.
const ExpireTimeLayout = "2006-01-02 15:04:05"

// AuthResponse is the reply envelope for every /dns-auth request. Code
// mirrors the HTTP status that carries it.
type AuthResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// VerifyData is the data payload of a successful verify call.
type VerifyData struct {
	IP         string `json:"ip"`
	Domain     string `json:"domain"`
	ExpireTime string `json:"expire_time"`
}

// FindData is the data payload of a successful find call. IP is the resolved
// target address from the mapping table, not the caller's address.
type FindData struct {
	Domain     string `json:"domain"`
	IP         string `json:"ip"`
	ExpireTime string `json:"expire_time"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
