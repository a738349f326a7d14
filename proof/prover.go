package proof

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Prover manages circuit compilation, setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*CompiledCircuit
	curve    ecc.ID
}

// CompiledCircuit holds a compiled constraint system and its keys.
type CompiledCircuit struct {
	Name         string
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
}

// Proof is a generated Groth16 proof with its public witness.
type Proof struct {
	CircuitName   string
	Proof         groth16.Proof
	PublicWitness witness.Witness
}

// NewProver creates a prover on BN254.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*CompiledCircuit),
		curve:    ecc.BN254,
	}
}

// NewStepProver creates a prover with the registry step circuit registered.
func NewStepProver() (*Prover, error) {
	p := NewProver()
	if err := p.RegisterCircuit(StepCircuitName, &StepCircuit{}); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterCircuit compiles a circuit to R1CS and runs the Groth16 setup.
func (p *Prover) RegisterCircuit(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("proof: circuit compilation failed: %w", err)
	}

	// Trusted setup; a production deployment would use a ceremony.
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("proof: setup failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.circuits[name] = &CompiledCircuit{
		Name:         name,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
	}
	return nil
}

// Circuit returns a compiled circuit by name.
func (p *Prover) Circuit(name string) (*CompiledCircuit, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cc, ok := p.circuits[name]
	return cc, ok
}

// Prove generates a proof for the given circuit and witness assignment.
func (p *Prover) Prove(circuitName string, assignment frontend.Circuit) (*Proof, error) {
	cc, ok := p.Circuit(circuitName)
	if !ok {
		return nil, fmt.Errorf("proof: circuit %q not registered", circuitName)
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("proof: witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("proof: proof generation failed: %w", err)
	}

	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("proof: public witness extraction failed: %w", err)
	}

	return &Proof{CircuitName: circuitName, Proof: proof, PublicWitness: public}, nil
}

// Verify checks a proof against the registered verifying key.
func (p *Prover) Verify(proof *Proof) error {
	cc, ok := p.Circuit(proof.CircuitName)
	if !ok {
		return fmt.Errorf("proof: circuit %q not registered", proof.CircuitName)
	}
	return groth16.Verify(proof.Proof, cc.VerifyingKey, proof.PublicWitness)
}

// ProveStep proves one registry step.
func (p *Prover) ProveStep(step *StepCircuit) (*Proof, error) {
	return p.Prove(StepCircuitName, step)
}
