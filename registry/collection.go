package registry

import (
	"fmt"
	"strconv"
)

// Collection is the ownership ledger for one fixed-capacity token collection.
//
// All mutating operations are all-or-nothing: every precondition is checked
// before any state is touched, and the only post-mutation callout (the
// safe-transfer receiver probe) undoes the operation's own effects on
// rejection. Notifications reach the journal only when an operation commits.
type Collection struct {
	name     string
	symbol   string
	capacity uint64

	gate     AdminGate
	resolver Resolver

	st      *state
	journal *Journal

	// CheckInvariants re-verifies the ledger invariants after every
	// mutating operation (default: true). A failure reports corruption
	// that has already been applied; it does not roll the operation back.
	CheckInvariants bool
}

// New creates a collection administered by a single fixed admin account.
func New(cfg Config, admin Address) (*Collection, error) {
	if admin.IsZero() {
		return nil, fmt.Errorf("%w: admin", ErrZeroAddress)
	}
	return NewWithGate(cfg, SingleAdmin(admin))
}

// NewWithGate creates a collection with an injected access-control gate.
func NewWithGate(cfg Config, gate AdminGate) (*Collection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gate == nil {
		return nil, fmt.Errorf("registry: nil admin gate")
	}
	return &Collection{
		name:            cfg.Name,
		symbol:          cfg.Symbol,
		capacity:        cfg.Capacity,
		gate:            gate,
		st:              newState(cfg.BaseURI),
		journal:         NewJournal(),
		CheckInvariants: true,
	}, nil
}

// Clone returns an independent copy of the collection: same configuration
// and state, empty journal, no resolver. Mutations on either side do not
// affect the other.
func (c *Collection) Clone() *Collection {
	return &Collection{
		name:            c.name,
		symbol:          c.symbol,
		capacity:        c.capacity,
		gate:            c.gate,
		st:              c.st.clone(),
		journal:         NewJournal(),
		CheckInvariants: c.CheckInvariants,
	}
}

// BindResolver installs the receiver resolver used by safe transfers.
// With a nil resolver no address is considered code-capable.
func (c *Collection) BindResolver(r Resolver) {
	c.resolver = r
}

// Name returns the immutable collection name.
func (c *Collection) Name() string { return c.name }

// Symbol returns the immutable collection symbol.
func (c *Collection) Symbol() string { return c.symbol }

// Capacity returns the immutable upper bound on total supply.
func (c *Collection) Capacity() uint64 { return c.capacity }

// TotalSupply returns the number of live tokens.
func (c *Collection) TotalSupply() uint64 { return c.st.supply }

// Paused reports whether minting is currently paused.
func (c *Collection) Paused() bool { return c.st.paused }

// BaseURI returns the current metadata base URI.
func (c *Collection) BaseURI() string { return c.st.baseURI }

// IsAdmin reports whether the gate recognizes caller as admin.
func (c *Collection) IsAdmin(caller Address) bool { return c.gate.IsAdmin(caller) }

// Journal returns the append-only notification journal.
func (c *Collection) Journal() *Journal { return c.journal }

// OwnerOf returns the current owner of a token.
func (c *Collection) OwnerOf(id TokenID) (Address, error) {
	owner, ok := c.st.owners[id]
	if !ok {
		return ZeroAddress, fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
	}
	return owner, nil
}

// BalanceOf returns the number of tokens held by an account.
// Never-seen accounts have balance 0; the zero address is rejected.
func (c *Collection) BalanceOf(acct Address) (uint64, error) {
	if acct.IsZero() {
		return 0, fmt.Errorf("%w: balance query", ErrZeroAddress)
	}
	return c.st.balances[acct], nil
}

// GetApproved returns the single approved account for a token, or the zero
// address if none is set.
func (c *Collection) GetApproved(id TokenID) (Address, error) {
	if _, ok := c.st.owners[id]; !ok {
		return ZeroAddress, fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
	}
	return c.st.approved[id], nil
}

// IsApprovedForAll reports whether operator holds blanket approval from owner.
func (c *Collection) IsApprovedForAll(owner, operator Address) bool {
	return c.st.isOperator(owner, operator)
}

// TokenURI returns the metadata locator for a token: the current base URI
// followed by the decimal representation of the id.
func (c *Collection) TokenURI(id TokenID) (string, error) {
	if _, ok := c.st.owners[id]; !ok {
		return "", fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
	}
	return c.st.baseURI + strconv.FormatUint(uint64(id), 10), nil
}

// Mint creates a token owned by to. Admin only; rejected while minting is
// paused, when the id is already owned, or when the collection is full.
// A burned id may be minted again: owner absence is the only existence test.
func (c *Collection) Mint(caller, to Address, id TokenID) error {
	if !c.gate.IsAdmin(caller) {
		return fmt.Errorf("%w: mint requires admin", ErrUnauthorized)
	}
	if c.st.paused {
		return ErrMintingPaused
	}
	if to.IsZero() {
		return fmt.Errorf("%w: mint recipient", ErrZeroAddress)
	}
	if _, ok := c.st.owners[id]; ok {
		return fmt.Errorf("%w: token %d", ErrTokenExists, id)
	}
	if c.st.supply >= c.capacity {
		return fmt.Errorf("%w: capacity %d", ErrCapacityReached, c.capacity)
	}

	c.st.owners[id] = to
	c.st.addBalance(to, 1)
	c.st.supply++

	return c.commit(TransferNote{From: ZeroAddress, To: to, Token: id})
}

// Burn destroys a token. Only the current owner may burn; approved accounts
// and operators may not, unlike transfer.
func (c *Collection) Burn(caller Address, id TokenID) error {
	owner, ok := c.st.owners[id]
	if !ok {
		return fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
	}
	if caller != owner {
		return fmt.Errorf("%w: burn is owner-only", ErrUnauthorized)
	}

	c.st.addBalance(owner, -1)
	delete(c.st.owners, id)
	delete(c.st.approved, id)
	c.st.supply--

	return c.commit(TransferNote{From: owner, To: ZeroAddress, Token: id})
}

// Approve sets (or, with a zero to, clears) the single approved account for
// a token. The caller must be the current owner or one of the owner's
// blanket operators. Approving the owner itself is a harmless no-op, not an
// error.
func (c *Collection) Approve(caller, to Address, id TokenID) error {
	owner, ok := c.st.owners[id]
	if !ok {
		return fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
	}
	if caller != owner && !c.st.isOperator(owner, caller) {
		return fmt.Errorf("%w: approve requires owner or operator", ErrUnauthorized)
	}

	if to.IsZero() {
		delete(c.st.approved, id)
	} else {
		c.st.approved[id] = to
	}

	return c.commit(ApprovalNote{Owner: owner, Approved: to, Token: id})
}

// SetApprovalForAll grants or revokes blanket operator approval for every
// token the caller owns, now and in the future. Self-approval is rejected.
func (c *Collection) SetApprovalForAll(caller, operator Address, approved bool) error {
	if operator == caller {
		return ErrSelfApproval
	}

	c.st.setOperator(caller, operator, approved)

	return c.commit(OperatorNote{Owner: caller, Operator: operator, Approved: approved})
}

// TransferFrom moves a token from from to to. The caller must be the owner,
// the single approved account, or a blanket operator of the owner. No check
// is made that to can hold the token; that is SafeTransferFrom's job.
func (c *Collection) TransferFrom(caller, from, to Address, id TokenID) error {
	if _, err := c.transfer(caller, from, to, id); err != nil {
		return err
	}
	return c.commit(TransferNote{From: from, To: to, Token: id})
}

// SafeTransferFrom is SafeTransferFromData with an empty payload.
func (c *Collection) SafeTransferFrom(caller, from, to Address, id TokenID) error {
	return c.SafeTransferFromData(caller, from, to, id, nil)
}

// SafeTransferFromData transfers a token and, if the recipient is
// code-capable, probes its acceptance callback. The ownership mutation is
// applied before the callout (checks-effects-interactions), so a reentrant
// call from the receiver observes committed post-transfer state. If the
// callback rejects, errors, or panics, the transfer's own effects are undone
// and a ReceiverError is returned. Effects a reentrant call already committed
// stay committed: if the receiver moved or burned the token before rejecting,
// the rollback is superseded and nothing is undone.
func (c *Collection) SafeTransferFromData(caller, from, to Address, id TokenID, data []byte) error {
	prevApproved, err := c.transfer(caller, from, to, id)
	if err != nil {
		return err
	}

	if rcv := c.resolveReceiver(to); rcv != nil {
		if rerr := c.probeReceiver(rcv, caller, from, to, id, data); rerr != nil {
			// Undo this operation's own mutation, but only while the token
			// is still where this transfer put it. A reentrant move or burn
			// has already rebalanced the ledger; a stale inverse on top of
			// it would corrupt supply and balances.
			if owner, ok := c.st.owners[id]; ok && owner == to {
				c.st.owners[id] = from
				c.st.addBalance(to, -1)
				c.st.addBalance(from, 1)
				if _, set := c.st.approved[id]; !set && !prevApproved.IsZero() {
					c.st.approved[id] = prevApproved
				}
			}
			return rerr
		}
	}

	return c.commit(TransferNote{From: from, To: to, Token: id})
}

// PauseMinting stops creation of new tokens. Admin only. Transfers,
// approvals, and burns are deliberately unaffected: pausing freezes supply,
// not movement of already-minted tokens.
func (c *Collection) PauseMinting(caller Address) error {
	if !c.gate.IsAdmin(caller) {
		return fmt.Errorf("%w: pause requires admin", ErrUnauthorized)
	}
	c.st.paused = true
	return c.commit(PauseNote{Paused: true})
}

// UnpauseMinting resumes creation of new tokens. Admin only.
func (c *Collection) UnpauseMinting(caller Address) error {
	if !c.gate.IsAdmin(caller) {
		return fmt.Errorf("%w: unpause requires admin", ErrUnauthorized)
	}
	c.st.paused = false
	return c.commit(PauseNote{Paused: false})
}

// SetBaseURI replaces the metadata base URI for all subsequent TokenURI
// calls. Admin only. Strings already returned are unaffected.
func (c *Collection) SetBaseURI(caller Address, uri string) error {
	if !c.gate.IsAdmin(caller) {
		return fmt.Errorf("%w: set base URI requires admin", ErrUnauthorized)
	}
	c.st.baseURI = uri
	return nil
}

// transfer validates and applies the plain transfer effect, returning the
// single approval that was cleared so SafeTransferFromData can restore it on
// rollback.
func (c *Collection) transfer(caller, from, to Address, id TokenID) (Address, error) {
	if from.IsZero() {
		return ZeroAddress, fmt.Errorf("%w: transfer from", ErrZeroAddress)
	}
	if to.IsZero() {
		return ZeroAddress, fmt.Errorf("%w: transfer to", ErrZeroAddress)
	}

	// An unminted token and a token owned by someone else are
	// indistinguishable at this check: both mean from is not the owner.
	owner, ok := c.st.owners[id]
	if !ok || owner != from {
		return ZeroAddress, fmt.Errorf("%w: token %d", ErrWrongOwner, id)
	}

	approved, hasApproval := c.st.approved[id]
	authorized := caller == from ||
		(hasApproval && approved == caller) ||
		c.st.isOperator(from, caller)
	if !authorized {
		return ZeroAddress, fmt.Errorf("%w: transfer of token %d", ErrUnauthorized, id)
	}

	c.st.addBalance(from, -1)
	c.st.addBalance(to, 1)
	c.st.owners[id] = to
	delete(c.st.approved, id)

	return approved, nil
}

// resolveReceiver returns the acceptance callback for to, or nil when to is
// not a code-capable account.
func (c *Collection) resolveReceiver(to Address) Receiver {
	if c.resolver == nil {
		return nil
	}
	return c.resolver.Resolve(to)
}

// probeReceiver invokes the acceptance callback, converting bad acks, error
// returns, and panics into a tagged ReceiverError. A nil result means the
// receiver accepted.
func (c *Collection) probeReceiver(rcv Receiver, caller, from, to Address, id TokenID, data []byte) (rerr *ReceiverError) {
	defer func() {
		if p := recover(); p != nil {
			rerr = &ReceiverError{
				Kind:   RejectCallFailed,
				Addr:   to,
				Token:  id,
				Detail: fmt.Sprintf("receiver panicked: %v", p),
			}
		}
	}()

	ack, err := rcv.OnTokenReceived(caller, from, id, data)
	switch {
	case err != nil:
		return &ReceiverError{
			Kind:   RejectCallFailed,
			Addr:   to,
			Token:  id,
			Detail: err.Error(),
			Cause:  err,
		}
	case ack == AckTokenReceived:
		return nil
	case ack == "":
		return &ReceiverError{
			Kind:   RejectNotImplemented,
			Addr:   to,
			Token:  id,
			Detail: "receiver not implemented",
		}
	default:
		return &ReceiverError{
			Kind:   RejectBadAck,
			Addr:   to,
			Token:  id,
			Detail: fmt.Sprintf("unexpected acceptance token %q", ack),
		}
	}
}

// commit re-checks invariants and, when they hold, journals an operation's
// notifications. A failed check means the ledger is already corrupt: the
// mutation has been applied and is not rolled back. The check is a debug
// assertion, not a recovery path; the failed operation journals nothing.
func (c *Collection) commit(notes ...Notification) error {
	if c.CheckInvariants {
		if violations := c.Violations(); len(violations) > 0 {
			return fmt.Errorf("%w: %s", ErrInvariantViolated, violations[0].Desc)
		}
	}

	c.journal.Append(notes...)
	return nil
}
