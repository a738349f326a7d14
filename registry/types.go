// Package registry implements a fixed-capacity non-fungible token collection:
// an ownership ledger with per-token and blanket operator approvals, admin-gated
// minting, owner-only burning, and a safe-transfer protocol that probes
// code-capable recipients and rolls back on rejection.
//
// Every operation is atomic: it either commits fully (state mutated,
// notifications appended to the journal) or leaves no observable change.
// The Collection itself is unsynchronized; callers are expected to serialize
// operations (wrap it in a single mutex if the host is concurrent).
package registry

// TokenID uniquely names one non-fungible token within a collection.
type TokenID uint64

// Address identifies an account. The zero value is the reserved null address:
// it can never own, send, or receive a live token.
type Address string

// ZeroAddress is the reserved null account identifier.
// Transfer notifications use it to signal mint (From) and burn (To).
const ZeroAddress Address = ""

// IsZero returns true for the reserved null address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Config holds the construction parameters of a collection.
// Name, Symbol, and Capacity are immutable once the collection is created;
// BaseURI may be changed later by the admin.
type Config struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Capacity uint64 `json:"capacity"`
	BaseURI  string `json:"base_uri,omitempty"`
}

// Validate checks the construction parameters.
func (c Config) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Symbol == "" {
		return ErrEmptySymbol
	}
	if c.Capacity == 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// AdminGate decides whether a caller may perform privileged operations
// (mint, pause, unpause, set base URI). It is injected at construction so a
// future multi-role policy can replace the single-admin default without
// changing any call site.
type AdminGate interface {
	IsAdmin(caller Address) bool
}

// SingleAdmin is the default gate: exactly one fixed admin account.
type SingleAdmin Address

// IsAdmin returns true if caller is the fixed admin account.
func (a SingleAdmin) IsAdmin(caller Address) bool {
	return !caller.IsZero() && caller == Address(a)
}
