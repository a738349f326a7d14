package registry

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/holiman/uint256"
)

// Commitment computes a content-addressed fingerprint of the ownership
// state: a sha256 over the supply counter and the sorted owner and balance
// maps, returned as a 256-bit integer. Two collections with identical
// ownership state have identical commitments regardless of how they reached
// it. Approvals and metadata are deliberately excluded: the commitment binds
// who owns what.
func (c *Collection) Commitment() *uint256.Int {
	h := sha256.New()
	buf := make([]byte, 8)

	binary.BigEndian.PutUint64(buf, c.st.supply)
	h.Write(buf)

	ids := make([]TokenID, 0, len(c.st.owners))
	for id := range c.st.owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf, uint64(id))
		h.Write(buf)
		h.Write([]byte(c.st.owners[id]))
	}

	accts := make([]Address, 0, len(c.st.balances))
	for acct := range c.st.balances {
		accts = append(accts, acct)
	}
	sort.Slice(accts, func(i, j int) bool { return accts[i] < accts[j] })
	for _, acct := range accts {
		h.Write([]byte(acct))
		binary.BigEndian.PutUint64(buf, c.st.balances[acct])
		h.Write(buf)
	}

	sum := h.Sum(nil)
	return new(uint256.Int).SetBytes(sum)
}
