package types

import "fmt"

// Byte lengths of the raw uncompressed BN254 curve point encodings used at
// the contract boundary.
const (
	G1PointSize = 64
	G2PointSize = 128
)

// Groth16Proof carries the three proof points as opaque byte blobs. The
// pairing backend is the only component that interprets them.
type Groth16Proof struct {
	A HexBytes `json:"a" cbor:"0,keyasint"`
	B HexBytes `json:"b" cbor:"1,keyasint"`
	C HexBytes `json:"c" cbor:"2,keyasint"`
}

// Valid checks the structural point lengths, not the proof itself.
func (p *Groth16Proof) Valid() error {
	if len(p.A) != G1PointSize {
		return fmt.Errorf("proof point A: expected %d bytes, got %d", G1PointSize, len(p.A))
	}
	if len(p.B) != G2PointSize {
		return fmt.Errorf("proof point B: expected %d bytes, got %d", G2PointSize, len(p.B))
	}
	if len(p.C) != G1PointSize {
		return fmt.Errorf("proof point C: expected %d bytes, got %d", G1PointSize, len(p.C))
	}
	return nil
}

// VerificationKey is the Groth16 verification key for the payment circuit.
// It is set exactly once at verifier initialization and immutable after.
// IC holds the ordered input-commitment points; IC[0] is the constant term,
// so a proof carries len(IC)-1 public inputs.
type VerificationKey struct {
	Alpha HexBytes   `json:"alpha" cbor:"0,keyasint"`
	Beta  HexBytes   `json:"beta"  cbor:"1,keyasint"`
	Gamma HexBytes   `json:"gamma" cbor:"2,keyasint"`
	Delta HexBytes   `json:"delta" cbor:"3,keyasint"`
	IC    []HexBytes `json:"ic"    cbor:"4,keyasint"`
}

// NumPublicInputs returns the number of public inputs proofs verified under
// this key must carry.
func (vk *VerificationKey) NumPublicInputs() int {
	if len(vk.IC) == 0 {
		return 0
	}
	return len(vk.IC) - 1
}
