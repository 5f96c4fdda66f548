package storage

import (
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// verificationKeyKey is the single slot under the verifier prefix.
var verificationKeyKey = []byte("groth16")

// VerificationKey retrieves the stored verification key, ErrNotFound if
// the verifier was never initialized.
func (s *Storage) VerificationKey() (*types.VerificationKey, error) {
	vk := &types.VerificationKey{}
	if err := s.getArtifact(verifierPrefix, verificationKeyKey, vk); err != nil {
		return nil, err
	}
	return vk, nil
}

// HasVerificationKey reports whether a verification key is stored.
func (s *Storage) HasVerificationKey() (bool, error) {
	return s.hasArtifact(verifierPrefix, verificationKeyKey)
}

// SetVerificationKey stores the verification key. The set-once rule is
// enforced by the verifier component, not here.
func (s *Storage) SetVerificationKey(vk *types.VerificationKey) error {
	return s.setArtifact(verifierPrefix, verificationKeyKey, vk)
}
