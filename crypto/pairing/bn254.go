// Package pairing implements Groth16 proof verification over BN254. It
// checks the pairing product equation
//
//	e(A, B) = e(alpha, beta) * e(IC, gamma) * e(C, delta)
//
// where IC = ic[0] + sum(ic[i+1] * input[i]) is the linear combination of
// the verification key's input commitments with the public inputs.
package pairing

import (
	"fmt"
	"math/big"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// Groth16 is the production verification backend. It is stateless and safe
// for concurrent use.
type Groth16 struct{}

// Verify checks the Groth16 pairing equation. A malformed point encoding
// (wrong length, not on curve, not in subgroup) is a verification failure,
// not an error; the error return is reserved for impossible states.
func (Groth16) Verify(proof *types.Groth16Proof, vk *types.VerificationKey, inputs []*big.Int) (bool, error) {
	if len(inputs) != vk.NumPublicInputs() {
		return false, nil
	}
	a, err := decodeG1(proof.A)
	if err != nil {
		return false, nil
	}
	b, err := decodeG2(proof.B)
	if err != nil {
		return false, nil
	}
	c, err := decodeG1(proof.C)
	if err != nil {
		return false, nil
	}
	alpha, err := decodeG1(vk.Alpha)
	if err != nil {
		return false, nil
	}
	beta, err := decodeG2(vk.Beta)
	if err != nil {
		return false, nil
	}
	gamma, err := decodeG2(vk.Gamma)
	if err != nil {
		return false, nil
	}
	delta, err := decodeG2(vk.Delta)
	if err != nil {
		return false, nil
	}
	ic := make([]bn254.G1Affine, len(vk.IC))
	for i, p := range vk.IC {
		icp, err := decodeG1(p)
		if err != nil {
			return false, nil
		}
		ic[i] = icp
	}

	// IC = ic[0] + sum(ic[i+1] * input[i])
	var acc bn254.G1Jac
	acc.FromAffine(&ic[0])
	for i, input := range inputs {
		var term bn254.G1Affine
		term.ScalarMultiplication(&ic[i+1], input)
		var termJac bn254.G1Jac
		termJac.FromAffine(&term)
		acc.AddAssign(&termJac)
	}
	var icSum bn254.G1Affine
	icSum.FromJacobian(&acc)

	// Move e(A, B) to the other side as e(-A, B) so the whole product
	// must equal one.
	var negA bn254.G1Affine
	negA.Neg(&a)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{negA, alpha, icSum, c},
		[]bn254.G2Affine{b, beta, gamma, delta},
	)
	if err != nil {
		return false, nil
	}
	return ok, nil
}

func decodeG1(data types.HexBytes) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(data) != types.G1PointSize {
		return p, fmt.Errorf("g1 point: expected %d bytes, got %d", types.G1PointSize, len(data))
	}
	if err := p.Unmarshal(data); err != nil {
		return p, fmt.Errorf("g1 point: %w", err)
	}
	return p, nil
}

func decodeG2(data types.HexBytes) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(data) != types.G2PointSize {
		return p, fmt.Errorf("g2 point: expected %d bytes, got %d", types.G2PointSize, len(data))
	}
	if err := p.Unmarshal(data); err != nil {
		return p, fmt.Errorf("g2 point: %w", err)
	}
	return p, nil
}
