package storage

import (
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// Nullifier retrieves a consumed-nullifier record by its 32-byte value.
func (s *Storage) Nullifier(value types.HexBytes) (*types.NullifierRecord, error) {
	n := &types.NullifierRecord{}
	if err := s.getArtifact(nullifierPrefix, value, n); err != nil {
		return nil, err
	}
	return n, nil
}

// HasNullifier reports whether a nullifier value has been consumed.
func (s *Storage) HasNullifier(value types.HexBytes) (bool, error) {
	return s.hasArtifact(nullifierPrefix, value)
}

// HasNullifierTx reports nullifier presence through an open transaction.
func HasNullifierTx(rd db.Reader, value types.HexBytes) (bool, error) {
	return hasArtifactIn(rd, nullifierPrefix, value)
}

// SetNullifierTx records a consumed nullifier. There is no corresponding
// delete: once written, the record is permanent.
func SetNullifierTx(wTx db.WriteTx, n *types.NullifierRecord) error {
	return setArtifactIn(wTx, nullifierPrefix, n.Value, n)
}

// SetNullifier records a consumed nullifier in its own transaction.
func (s *Storage) SetNullifier(n *types.NullifierRecord) error {
	return s.setArtifact(nullifierPrefix, n.Value, n)
}
