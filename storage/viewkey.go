package storage

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// ViewKey retrieves an audit view key by its derived id.
func (s *Storage) ViewKey(id types.HexBytes) (*types.ViewKey, error) {
	k := &types.ViewKey{}
	if err := s.getArtifact(viewKeyPrefix, id, k); err != nil {
		return nil, err
	}
	return k, nil
}

// SetViewKeyTx stores a view key through an open transaction, so the key
// write shares atomicity with its nonce increment.
func SetViewKeyTx(wTx db.WriteTx, k *types.ViewKey) error {
	return setArtifactIn(wTx, viewKeyPrefix, k.ID, k)
}

// DeleteViewKey removes a revoked view key.
func (s *Storage) DeleteViewKey(id types.HexBytes) error {
	return s.deleteArtifact(viewKeyPrefix, id)
}

// NextKeyNonceTx increments and returns the per-(company, auditor) view
// key nonce, under the same transaction as the key write it gates.
func NextKeyNonceTx(wTx db.WriteTx, company types.CompanyID, auditor common.Address) (uint64, error) {
	return nextPrefixedCounterTx(wTx, keyNoncePrefix, keyNonceKey(company, auditor))
}
