package registry

// state holds the mutable ledger maps of a collection.
// A token exists iff it has an entry in owners.
type state struct {
	owners    map[TokenID]Address
	balances  map[Address]uint64
	approved  map[TokenID]Address
	operators map[Address]map[Address]bool
	supply    uint64
	paused    bool
	baseURI   string
}

func newState(baseURI string) *state {
	return &state{
		owners:    make(map[TokenID]Address),
		balances:  make(map[Address]uint64),
		approved:  make(map[TokenID]Address),
		operators: make(map[Address]map[Address]bool),
		baseURI:   baseURI,
	}
}

// clone creates a deep copy of the state.
func (s *state) clone() *state {
	c := newState(s.baseURI)
	c.supply = s.supply
	c.paused = s.paused
	for id, owner := range s.owners {
		c.owners[id] = owner
	}
	for acct, bal := range s.balances {
		c.balances[acct] = bal
	}
	for id, addr := range s.approved {
		c.approved[id] = addr
	}
	for owner, ops := range s.operators {
		inner := make(map[Address]bool, len(ops))
		for op, ok := range ops {
			inner[op] = ok
		}
		c.operators[owner] = inner
	}
	return c
}

// addBalance adjusts an account balance, deleting zero entries so that
// balances only holds accounts that currently own tokens.
func (s *state) addBalance(acct Address, delta int64) {
	next := int64(s.balances[acct]) + delta
	if next <= 0 {
		delete(s.balances, acct)
		return
	}
	s.balances[acct] = uint64(next)
}

// isOperator reports whether op holds blanket approval from owner.
func (s *state) isOperator(owner, op Address) bool {
	return s.operators[owner][op]
}

// setOperator sets or clears blanket approval, pruning empty inner maps.
func (s *state) setOperator(owner, op Address, approved bool) {
	if approved {
		inner := s.operators[owner]
		if inner == nil {
			inner = make(map[Address]bool)
			s.operators[owner] = inner
		}
		inner[op] = true
		return
	}
	if inner := s.operators[owner]; inner != nil {
		delete(inner, op)
		if len(inner) == 0 {
			delete(s.operators, owner)
		}
	}
}
