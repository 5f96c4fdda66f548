package verifier

import (
	"math/big"

	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// MockBackend accepts every structurally valid proof except those whose A
// point has been marked rejected. Used by component and integration tests
// that exercise settlement logic without a real trusted setup.
type MockBackend struct {
	rejected map[string]struct{}
}

// NewMockBackend creates a backend that accepts everything.
func NewMockBackend() *MockBackend {
	return &MockBackend{rejected: make(map[string]struct{})}
}

// Reject marks proofs carrying this A point as invalid.
func (m *MockBackend) Reject(proofA types.HexBytes) {
	m.rejected[string(proofA)] = struct{}{}
}

// Verify implements Backend.
func (m *MockBackend) Verify(proof *types.Groth16Proof, _ *types.VerificationKey, _ []*big.Int) (bool, error) {
	_, bad := m.rejected[string(proof.A)]
	return !bad, nil
}
