package registry

import "fmt"

// Ack is the acceptance token a receiver returns to acknowledge a safe
// transfer. Any value other than AckTokenReceived counts as rejection.
type Ack string

// AckTokenReceived is the expected acceptance token.
const AckTokenReceived Ack = "nftregistry/receiver/v1"

// Receiver is implemented by code-capable accounts that can acknowledge
// receipt of a token. It is invoked by SafeTransferFrom after the ownership
// mutation has already been applied, so a receiver calling back into the
// collection observes fully consistent post-transfer state.
type Receiver interface {
	OnTokenReceived(operator, from Address, id TokenID, data []byte) (Ack, error)
}

// Resolver maps addresses to receiver implementations. A nil Receiver means
// the address is not code-capable and the safe-transfer probe is skipped.
type Resolver interface {
	Resolve(addr Address) Receiver
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(addr Address) Receiver

// Resolve calls f.
func (f ResolverFunc) Resolve(addr Address) Receiver { return f(addr) }

// RejectKind classifies why a safe transfer was rolled back.
type RejectKind int

const (
	// RejectBadAck: the callback ran but returned an unexpected acceptance token.
	RejectBadAck RejectKind = iota
	// RejectNotImplemented: the recipient exposes no acceptance logic.
	RejectNotImplemented
	// RejectCallFailed: the callback returned an error or panicked.
	RejectCallFailed
)

func (k RejectKind) String() string {
	switch k {
	case RejectBadAck:
		return "bad-ack"
	case RejectNotImplemented:
		return "not-implemented"
	case RejectCallFailed:
		return "call-failed"
	default:
		return "?"
	}
}

// ReceiverError reports a rejected safe transfer. It preserves the
// recipient's own diagnostic when one is available and unwraps to
// ErrReceiverRejected.
type ReceiverError struct {
	Kind   RejectKind
	Addr   Address
	Token  TokenID
	Detail string // callback diagnostic, or "receiver not implemented"
	Cause  error  // underlying callback error, if any
}

func (e *ReceiverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s (%s): %v", ErrReceiverRejected, e.Detail, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%v: %s (%s)", ErrReceiverRejected, e.Detail, e.Kind)
}

// Unwrap returns ErrReceiverRejected so errors.Is matches the taxonomy.
func (e *ReceiverError) Unwrap() error { return ErrReceiverRejected }
