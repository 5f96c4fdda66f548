// Package commitment implements the hiding salary commitment
// Poseidon(salary, blinding) over the BN254 scalar field, plus blinding
// factor generation. This is the interface boundary shared with the
// off-chain prover tooling: all 32-byte field-element encodings are
// canonical little-endian.
package commitment

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// bn254ScalarField is the prime order of the BN254 scalar field. Blinding
// factors and hash outputs are elements of this field.
var bn254ScalarField, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// BigToFF returns the finite field representation of the provided big.Int
// using Euclidean modulus over the BN254 scalar field.
func BigToFF(iv *big.Int) *big.Int {
	z := big.NewInt(0)
	if c := iv.Cmp(bn254ScalarField); c == 0 {
		return z
	} else if c != 1 && iv.Cmp(z) != -1 {
		return iv
	}
	return z.Mod(iv, bn254ScalarField)
}

// ScalarFromLEBytes decodes a little-endian byte slice into a BN254 scalar.
func ScalarFromLEBytes(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return BigToFF(new(big.Int).SetBytes(be))
}

// ScalarToLEBytes encodes a BN254 scalar as its canonical 32-byte
// little-endian form.
func ScalarToLEBytes(v *big.Int) types.HexBytes {
	be := BigToFF(v).Bytes()
	le := make([]byte, types.DigestSize)
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}

// GenerateBlinding returns a uniformly random BN254 scalar in 32-byte
// little-endian form. It reads 64 bytes from the CSPRNG and reduces, so
// the reduction bias is negligible.
func GenerateBlinding() (types.HexBytes, error) {
	wide := make([]byte, 64)
	if _, err := rand.Read(wide); err != nil {
		return nil, fmt.Errorf("cannot read entropy: %w", err)
	}
	return ScalarToLEBytes(new(big.Int).Mod(new(big.Int).SetBytes(wide), bn254ScalarField)), nil
}

// Commit computes Poseidon(salary, blinding) and returns the 32-byte
// little-endian digest. Deterministic: identical inputs always produce the
// identical digest.
func Commit(salary uint64, blinding types.HexBytes) (types.HexBytes, error) {
	if len(blinding) != types.DigestSize {
		return nil, fmt.Errorf("blinding factor: expected %d bytes, got %d", types.DigestSize, len(blinding))
	}
	hash, err := poseidon.Hash([]*big.Int{
		new(big.Int).SetUint64(salary),
		ScalarFromLEBytes(blinding),
	})
	if err != nil {
		return nil, fmt.Errorf("poseidon hash: %w", err)
	}
	return ScalarToLEBytes(hash), nil
}

// RecipientHash derives the public-input hash of a payment recipient.
func RecipientHash(recipient common.Address) (types.HexBytes, error) {
	hash, err := poseidon.Hash([]*big.Int{
		new(big.Int).SetBytes(recipient.Bytes()),
	})
	if err != nil {
		return nil, fmt.Errorf("poseidon hash: %w", err)
	}
	return ScalarToLEBytes(hash), nil
}
