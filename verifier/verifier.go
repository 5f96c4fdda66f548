// Package verifier gates settlement on Groth16 proof verification. The
// verification key is set exactly once at deployment; after that,
// VerifyProof is a pure read path. Malformed proofs and wrong input
// arities verify to false rather than erroring, so a bad batch entry can
// never be confused with an infrastructure failure.
package verifier

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

var (
	// ErrAlreadyInitialized is returned when a verification key is
	// already stored.
	ErrAlreadyInitialized = errors.New("verifier already initialized")
	// ErrNotInitialized is returned when no verification key is stored.
	ErrNotInitialized = errors.New("verifier not initialized")
)

// Backend checks the Groth16 pairing equation. Implementations must treat
// malformed proofs as a false result, not an error.
type Backend interface {
	Verify(proof *types.Groth16Proof, vk *types.VerificationKey, inputs []*big.Int) (bool, error)
}

// Verifier is the proof verification component.
type Verifier struct {
	stg     *storage.Storage
	backend Backend
}

// New creates a verifier with the given pairing backend.
func New(stg *storage.Storage, backend Backend) *Verifier {
	return &Verifier{stg: stg, backend: backend}
}

// Initialize stores the verification key. It fails if a key is already
// present; there is no rotation path.
func (v *Verifier) Initialize(vk *types.VerificationKey) error {
	if err := checkKey(vk); err != nil {
		return err
	}
	has, err := v.stg.HasVerificationKey()
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyInitialized
	}
	if err := v.stg.SetVerificationKey(vk); err != nil {
		return err
	}
	log.Infow("verification key installed", "publicInputs", vk.NumPublicInputs())
	return nil
}

// VerificationKey returns the stored key, ErrNotInitialized if absent.
func (v *Verifier) VerificationKey() (*types.VerificationKey, error) {
	vk, err := v.stg.VerificationKey()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return vk, nil
}

// VerifyProof checks one proof against the stored key. The public inputs
// are 32-byte little-endian field elements; an arity mismatch with the
// key's IC vector is a false result.
func (v *Verifier) VerifyProof(proof *types.Groth16Proof, publicInputs []types.HexBytes) (bool, error) {
	vk, err := v.VerificationKey()
	if err != nil {
		return false, err
	}
	if len(publicInputs) != vk.NumPublicInputs() {
		log.Debugw("public input arity mismatch", "got", len(publicInputs), "want", vk.NumPublicInputs())
		return false, nil
	}
	if err := proof.Valid(); err != nil {
		log.Debugw("malformed proof", "error", err.Error())
		return false, nil
	}
	inputs := make([]*big.Int, len(publicInputs))
	for i, in := range publicInputs {
		inputs[i] = commitment.ScalarFromLEBytes(in)
	}
	return v.backend.Verify(proof, vk, inputs)
}

// VerifyBatchProofs checks a batch of proofs, each against its own input
// triple, short-circuiting on the first failure.
func (v *Verifier) VerifyBatchProofs(proofs []types.Groth16Proof, inputs [][]types.HexBytes) (bool, error) {
	if len(proofs) != len(inputs) {
		return false, nil
	}
	for i := range proofs {
		ok, err := v.VerifyProof(&proofs[i], inputs[i])
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func checkKey(vk *types.VerificationKey) error {
	if len(vk.Alpha) != types.G1PointSize {
		return fmt.Errorf("verification key: alpha must be %d bytes", types.G1PointSize)
	}
	for name, p := range map[string]types.HexBytes{"beta": vk.Beta, "gamma": vk.Gamma, "delta": vk.Delta} {
		if len(p) != types.G2PointSize {
			return fmt.Errorf("verification key: %s must be %d bytes", name, types.G2PointSize)
		}
	}
	if len(vk.IC) == 0 {
		return errors.New("verification key: empty ic vector")
	}
	for i, p := range vk.IC {
		if len(p) != types.G1PointSize {
			return fmt.Errorf("verification key: ic[%d] must be %d bytes", i, types.G1PointSize)
		}
	}
	return nil
}
