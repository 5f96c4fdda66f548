// Package token is a minimal fungible token ledger used to move funds
// from company treasuries to employees at settlement. It exists so the
// payroll flow is exercised end to end; it is not a general-purpose asset
// contract.
package token

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/log"
)

var (
	// ErrInsufficientBalance is returned when a transfer exceeds the
	// sender's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Ledger is the token balance ledger. Minting requires the ledger admin;
// transfers require the sender principal.
type Ledger struct {
	stg   *storage.Storage
	auth  host.Authenticator
	admin common.Address
}

// NewLedger creates a ledger with the given mint authority.
func NewLedger(stg *storage.Storage, auth host.Authenticator, admin common.Address) *Ledger {
	return &Ledger{stg: stg, auth: auth, admin: admin}
}

// Balance returns the balance of an account, zero if it never held funds.
func (l *Ledger) Balance(id common.Address) (*big.Int, error) {
	return l.stg.Balance(id)
}

// Mint credits an account. Admin only.
func (l *Ledger) Mint(to common.Address, amount *big.Int) error {
	if err := l.auth.RequireAuth(l.admin); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	wTx := l.stg.WriteTx()
	defer wTx.Discard()

	bal, err := storage.BalanceTx(wTx, to)
	if err != nil {
		return err
	}
	if err := storage.SetBalanceTx(wTx, to, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	if err := wTx.Commit(); err != nil {
		return err
	}
	log.Debugw("minted", "to", to.Hex(), "amount", amount.String())
	return nil
}

// Transfer moves funds between accounts in its own transaction.
func (l *Ledger) Transfer(from, to common.Address, amount *big.Int) error {
	if err := l.auth.RequireAuth(from); err != nil {
		return err
	}
	wTx := l.stg.WriteTx()
	defer wTx.Discard()
	if err := TransferTx(wTx, from, to, amount); err != nil {
		return err
	}
	return wTx.Commit()
}

// TransferTx moves funds through an open transaction. The settlement
// executor calls this as the final interaction of each batch entry, after
// all checks and state writes, so a failed transfer rolls the whole batch
// back. Authorization is the caller's responsibility.
func TransferTx(wTx db.WriteTx, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	fromBal, err := storage.BalanceTx(wTx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toBal, err := storage.BalanceTx(wTx, to)
	if err != nil {
		return err
	}
	if err := storage.SetBalanceTx(wTx, from, new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	return storage.SetBalanceTx(wTx, to, new(big.Int).Add(toBal, amount))
}
