package gateway

import "errors"

// Every store failure is converted into one of these before it leaves the
// package; the HTTP layer never sees a raw gorm error.
var (
	ErrInvalidRequest = errors.New("missing or malformed request field")
	ErrForbidden      = errors.New("source address is not whitelisted")
	ErrNotFound       = errors.New("no matching record")
	ErrExpired        = errors.New("verification grant has expired")
	ErrStorage        = errors.New("storage failure")
)
