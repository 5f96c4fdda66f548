// Package nullifiers tracks one-time payment nullifiers. A nullifier is a
// 32-byte value derived inside the proving circuit from the payment
// period and the employee's secret; recording it a second time is the
// double-payment signal. Records are permanent and never deleted.
package nullifiers

import (
	"errors"
	"fmt"

	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// ErrNullifierAlreadyUsed is returned when a nullifier was already
// consumed by an earlier payment.
var ErrNullifierAlreadyUsed = errors.New("nullifier already used")

// Registry is the nullifier set over persistent storage.
type Registry struct {
	stg   *storage.Storage
	clock host.Clock
}

// New creates a nullifier registry.
func New(stg *storage.Storage, clock host.Clock) *Registry {
	return &Registry{stg: stg, clock: clock}
}

// IsUsed reports whether the nullifier has been consumed.
func (r *Registry) IsUsed(value types.HexBytes) (bool, error) {
	return r.stg.HasNullifier(value)
}

// Record consumes a nullifier in its own transaction. The existence check
// and the write share the transaction, so two concurrent calls with the
// same value cannot both succeed.
func (r *Registry) Record(value types.HexBytes) error {
	wTx := r.stg.WriteTx()
	defer wTx.Discard()
	if err := r.RecordTx(wTx, value); err != nil {
		return err
	}
	return wTx.Commit()
}

// RecordTx consumes a nullifier through an open transaction, so a batch
// settlement can roll the record back together with everything else.
func (r *Registry) RecordTx(wTx db.WriteTx, value types.HexBytes) error {
	if len(value) != types.DigestSize {
		return fmt.Errorf("nullifier: expected %d bytes, got %d", types.DigestSize, len(value))
	}
	used, err := storage.HasNullifierTx(wTx, value)
	if err != nil {
		return err
	}
	if used {
		return ErrNullifierAlreadyUsed
	}
	return storage.SetNullifierTx(wTx, &types.NullifierRecord{
		Value:  value,
		UsedAt: r.clock.Timestamp(),
	})
}
