package registry

import "errors"

var (
	// Construction errors
	ErrInvalidCapacity = errors.New("registry: capacity must be positive")
	ErrEmptyName       = errors.New("registry: collection name cannot be empty")
	ErrEmptySymbol     = errors.New("registry: collection symbol cannot be empty")

	// Argument errors
	ErrZeroAddress  = errors.New("registry: zero address")
	ErrSelfApproval = errors.New("registry: operator approval for self")

	// Authorization errors
	ErrUnauthorized = errors.New("registry: caller not authorized")

	// State errors
	ErrMintingPaused = errors.New("registry: minting is paused")

	// Registry errors
	ErrTokenNotFound   = errors.New("registry: token does not exist")
	ErrTokenExists     = errors.New("registry: token already minted")
	ErrWrongOwner      = errors.New("registry: from is not the token owner")
	ErrCapacityReached = errors.New("registry: capacity reached")

	// Safe-transfer errors
	ErrReceiverRejected = errors.New("registry: receiver rejected token")

	// Invariant errors
	ErrInvariantViolated = errors.New("registry: invariant violated")
)
