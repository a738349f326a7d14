// Package proof generates Groth16 proofs that a registry state transition
// conserves supply: the change in total supply equals the sum of changes in
// the touched balances, and the resulting supply stays within capacity.
// Proofs cover single steps (mint, burn, transfer) between two observed
// states.
package proof

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

// StepCircuitName identifies the registered step circuit.
const StepCircuitName = "registry-step"

// StepCircuit proves conservation for one registry step. Supply and capacity
// are public; the touched balances stay private. At most two accounts change
// in any step: the sender side (zero for mint) and the recipient side (zero
// for burn). For a self-transfer leave the To side at zero.
type StepCircuit struct {
	SupplyBefore frontend.Variable `gnark:",public"`
	SupplyAfter  frontend.Variable `gnark:",public"`
	Capacity     frontend.Variable `gnark:",public"`

	FromBefore frontend.Variable
	FromAfter  frontend.Variable
	ToBefore   frontend.Variable
	ToAfter    frontend.Variable
}

// Define declares the conservation constraints:
//
//	supplyAfter - supplyBefore == (fromAfter - fromBefore) + (toAfter - toBefore)
//	supplyAfter <= capacity
//	each touched balance <= supplyAfter
func (c *StepCircuit) Define(api frontend.API) error {
	supplyDelta := api.Sub(c.SupplyAfter, c.SupplyBefore)
	balanceDelta := api.Add(
		api.Sub(c.FromAfter, c.FromBefore),
		api.Sub(c.ToAfter, c.ToBefore),
	)
	api.AssertIsEqual(supplyDelta, balanceDelta)

	api.AssertIsLessOrEqual(c.SupplyAfter, c.Capacity)
	api.AssertIsLessOrEqual(c.FromAfter, c.SupplyAfter)
	api.AssertIsLessOrEqual(c.ToAfter, c.SupplyAfter)

	return nil
}

// TransferStep builds the witness for a plain transfer between two accounts:
// supply is unchanged, one balance decrements, another increments. The sender
// must hold at least one token or the decrement would wrap.
func TransferStep(supply, capacity, fromBefore, toBefore uint64) (*StepCircuit, error) {
	if fromBefore == 0 {
		return nil, fmt.Errorf("proof: transfer step with empty sender balance")
	}
	return &StepCircuit{
		SupplyBefore: supply,
		SupplyAfter:  supply,
		Capacity:     capacity,
		FromBefore:   fromBefore,
		FromAfter:    fromBefore - 1,
		ToBefore:     toBefore,
		ToAfter:      toBefore + 1,
	}, nil
}

// MintStep builds the witness for a mint: supply and the recipient balance
// both increment; the sender side is the untouched zero account.
func MintStep(supplyBefore, capacity, toBefore uint64) (*StepCircuit, error) {
	if supplyBefore >= capacity {
		return nil, fmt.Errorf("proof: mint step at capacity %d", capacity)
	}
	return &StepCircuit{
		SupplyBefore: supplyBefore,
		SupplyAfter:  supplyBefore + 1,
		Capacity:     capacity,
		FromBefore:   0,
		FromAfter:    0,
		ToBefore:     toBefore,
		ToAfter:      toBefore + 1,
	}, nil
}

// BurnStep builds the witness for a burn: supply and the owner balance both
// decrement; the recipient side is the untouched zero account. Both counters
// must be positive or the decrements would wrap.
func BurnStep(supplyBefore, capacity, ownerBefore uint64) (*StepCircuit, error) {
	if supplyBefore == 0 || ownerBefore == 0 {
		return nil, fmt.Errorf("proof: burn step with nothing to burn")
	}
	return &StepCircuit{
		SupplyBefore: supplyBefore,
		SupplyAfter:  supplyBefore - 1,
		Capacity:     capacity,
		FromBefore:   ownerBefore,
		FromAfter:    ownerBefore - 1,
		ToBefore:     0,
		ToAfter:      0,
	}, nil
}
