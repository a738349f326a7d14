package registry

import (
	"errors"
	"testing"
)

func TestInvariantsHoldAcrossOperations(t *testing.T) {
	col := newTestCollection(t, 10)

	ops := []func() error{
		func() error { return col.Mint(admin, userA, 1) },
		func() error { return col.Mint(admin, userA, 2) },
		func() error { return col.Mint(admin, userB, 3) },
		func() error { return col.Approve(userA, userB, 1) },
		func() error { return col.TransferFrom(userB, userA, userB, 1) },
		func() error { return col.SetApprovalForAll(userB, userC, true) },
		func() error { return col.TransferFrom(userC, userB, userC, 3) },
		func() error { return col.Burn(userC, 3) },
		func() error { return col.Mint(admin, userC, 3) },
		func() error { return col.Burn(userA, 2) },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
		if v := col.Violations(); len(v) != 0 {
			t.Fatalf("invariants violated after op %d: %v", i, v)
		}
	}

	// supply == sum of balances, supply <= capacity
	var sum uint64
	for _, acct := range []Address{userA, userB, userC} {
		bal, err := col.BalanceOf(acct)
		if err != nil {
			t.Fatalf("balance query: %v", err)
		}
		sum += bal
	}
	if sum != col.TotalSupply() {
		t.Errorf("balance sum %d != supply %d", sum, col.TotalSupply())
	}
	if col.TotalSupply() > col.Capacity() {
		t.Errorf("supply %d exceeds capacity %d", col.TotalSupply(), col.Capacity())
	}
}

func TestCommitment(t *testing.T) {
	// Two collections reaching the same ownership state through different
	// histories must have identical commitments.
	a := newTestCollection(t, 10)
	b := newTestCollection(t, 10)

	if err := a.Mint(admin, userA, 1); err != nil {
		t.Fatal(err)
	}
	if err := a.Mint(admin, userB, 2); err != nil {
		t.Fatal(err)
	}

	if err := b.Mint(admin, userB, 2); err != nil {
		t.Fatal(err)
	}
	if err := b.Mint(admin, userC, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.TransferFrom(userC, userC, userA, 1); err != nil {
		t.Fatal(err)
	}

	if a.Commitment().Cmp(b.Commitment()) != 0 {
		t.Errorf("same state, different commitments: %s vs %s",
			a.Commitment().Hex(), b.Commitment().Hex())
	}

	// Approvals do not affect the commitment; ownership changes do.
	before := a.Commitment()
	if err := a.Approve(userA, userB, 1); err != nil {
		t.Fatal(err)
	}
	if a.Commitment().Cmp(before) != 0 {
		t.Error("approval changed the ownership commitment")
	}
	if err := a.TransferFrom(userB, userA, userB, 1); err != nil {
		t.Fatal(err)
	}
	if a.Commitment().Cmp(before) == 0 {
		t.Error("transfer did not change the ownership commitment")
	}
}

func TestInvariantCheckBlocksJournal(t *testing.T) {
	col := newTestCollection(t, 10)

	// Corrupt the ledger behind the collection's back; the next commit
	// must report it and journal nothing.
	col.st.supply = 5

	err := col.Mint(admin, userA, 1)
	if !errors.Is(err, ErrInvariantViolated) {
		t.Fatalf("expected ErrInvariantViolated, got %v", err)
	}
	if col.Journal().Len() != 0 {
		t.Errorf("notification journaled despite failed invariant check")
	}
}

func TestClone_Independent(t *testing.T) {
	col := newTestCollection(t, 10)
	if err := col.Mint(admin, userA, 1); err != nil {
		t.Fatal(err)
	}

	fork := col.Clone()
	if fork.Commitment().Cmp(col.Commitment()) != 0 {
		t.Fatal("clone has a different commitment")
	}
	if fork.Journal().Len() != 0 {
		t.Errorf("clone inherited %d journal entries", fork.Journal().Len())
	}

	if err := fork.TransferFrom(userA, userA, userB, 1); err != nil {
		t.Fatalf("transfer on clone failed: %v", err)
	}
	owner, err := col.OwnerOf(1)
	if err != nil {
		t.Fatal(err)
	}
	if owner != userA {
		t.Errorf("mutating the clone changed the original: owner %s", owner)
	}
	if fork.Commitment().Cmp(col.Commitment()) == 0 {
		t.Error("diverged clone still shares the original's commitment")
	}
}
