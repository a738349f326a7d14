package registry

import "fmt"

// Violation describes one failed ledger invariant.
type Violation struct {
	Desc string
}

// Violations checks every structural invariant of the ledger against the
// current state and returns the failures (empty when all hold):
//
//   - totalSupply == number of owner entries == sum of all balances
//   - totalSupply <= capacity
//   - each balance equals the count of tokens owned by that account
//   - no token is owned by the zero address
//   - single approvals reference only existing tokens
func (c *Collection) Violations() []Violation {
	var out []Violation

	if uint64(len(c.st.owners)) != c.st.supply {
		out = append(out, Violation{Desc: fmt.Sprintf(
			"supply %d != %d owned tokens", c.st.supply, len(c.st.owners))})
	}
	if c.st.supply > c.capacity {
		out = append(out, Violation{Desc: fmt.Sprintf(
			"supply %d exceeds capacity %d", c.st.supply, c.capacity)})
	}

	var sum uint64
	counts := make(map[Address]uint64, len(c.st.balances))
	for id, owner := range c.st.owners {
		if owner.IsZero() {
			out = append(out, Violation{Desc: fmt.Sprintf(
				"token %d owned by zero address", id)})
			continue
		}
		counts[owner]++
	}
	for acct, bal := range c.st.balances {
		sum += bal
		if counts[acct] != bal {
			out = append(out, Violation{Desc: fmt.Sprintf(
				"balance of %s is %d, owns %d tokens", acct, bal, counts[acct])})
		}
	}
	for acct, n := range counts {
		if _, ok := c.st.balances[acct]; !ok {
			out = append(out, Violation{Desc: fmt.Sprintf(
				"account %s owns %d tokens with no balance entry", acct, n)})
		}
	}
	if sum != c.st.supply {
		out = append(out, Violation{Desc: fmt.Sprintf(
			"supply %d != balance sum %d", c.st.supply, sum)})
	}

	for id := range c.st.approved {
		if _, ok := c.st.owners[id]; !ok {
			out = append(out, Violation{Desc: fmt.Sprintf(
				"approval on non-existent token %d", id)})
		}
	}

	return out
}
