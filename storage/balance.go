package storage

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// Token ledger balances. The token package owns the transfer semantics;
// storage only provides the raw accessors under the balance prefix.

// Balance returns the token balance of an account, zero if absent.
func (s *Storage) Balance(id common.Address) (*big.Int, error) {
	return balanceIn(s.db, id)
}

// BalanceTx reads a balance through an open transaction.
func BalanceTx(rd db.Reader, id common.Address) (*big.Int, error) {
	return balanceIn(rd, id)
}

func balanceIn(rd db.Reader, id common.Address) (*big.Int, error) {
	data, err := prefixeddb.NewPrefixedReader(rd, balancePrefix).Get(id.Bytes())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}

// SetBalanceTx writes a balance through an open transaction.
func SetBalanceTx(wTx db.WriteTx, id common.Address, amount *big.Int) error {
	return prefixeddb.NewPrefixedWriteTx(wTx, balancePrefix).Set(id.Bytes(), amount.Bytes())
}
