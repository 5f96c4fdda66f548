// Package commitments manages the salary commitment store. Each employee
// holds at most one active commitment, a Poseidon(salary, blinding)
// digest with a version that increments on every salary change. The store
// never sees a salary in plaintext: amounts only appear here inside the
// opening-verification helper, which the caller invokes off the hot path.
package commitments

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// ErrCommitmentNotFound is returned when an employee has no active
// commitment record.
var ErrCommitmentNotFound = errors.New("commitment not found")

// Update is one entry of a batch commitment rotation.
type Update struct {
	Employee      common.Address `json:"employee"`
	NewCommitment types.HexBytes `json:"newCommitment"`
}

// Store is the commitment store over persistent storage.
type Store struct {
	stg   *storage.Storage
	clock host.Clock
}

// New creates a commitment store.
func New(stg *storage.Storage, clock host.Clock) *Store {
	return &Store{stg: stg, clock: clock}
}

// Commitment returns the active commitment record of an employee.
func (s *Store) Commitment(employee common.Address) (*types.EmployeeCommitment, error) {
	rec, err := s.stg.Commitment(employee)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommitmentNotFound
		}
		return nil, err
	}
	return rec, nil
}

// HasCommitment reports whether an employee has an active commitment.
func (s *Store) HasCommitment(employee common.Address) (bool, error) {
	return s.stg.HasCommitment(employee)
}

// StoreCommitment writes a fresh commitment at version 1, replacing any
// previous record for the employee.
func (s *Store) StoreCommitment(company types.CompanyID, employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	wTx := s.stg.WriteTx()
	defer wTx.Discard()
	rec, err := s.StoreCommitmentTx(wTx, company, employee, digest)
	if err != nil {
		return nil, err
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// StoreCommitmentTx writes a fresh commitment through an open transaction.
func (s *Store) StoreCommitmentTx(wTx db.WriteTx, company types.CompanyID, employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	if err := checkDigest(digest); err != nil {
		return nil, err
	}
	now := s.clock.Timestamp()
	rec := &types.EmployeeCommitment{
		CompanyID:  company,
		Employee:   employee,
		Commitment: digest,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := storage.SetCommitmentTx(wTx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateCommitment rotates the commitment of an employee, bumping the
// version. The previous digest is overwritten, not archived.
func (s *Store) UpdateCommitment(employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	wTx := s.stg.WriteTx()
	defer wTx.Discard()
	rec, err := s.UpdateCommitmentTx(wTx, employee, digest)
	if err != nil {
		return nil, err
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateCommitmentTx rotates a commitment through an open transaction.
func (s *Store) UpdateCommitmentTx(wTx db.WriteTx, employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	if err := checkDigest(digest); err != nil {
		return nil, err
	}
	rec, err := storage.CommitmentTx(wTx, employee)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommitmentNotFound
		}
		return nil, err
	}
	rec.Commitment = digest
	rec.Version++
	rec.UpdatedAt = s.clock.Timestamp()
	if err := storage.SetCommitmentTx(wTx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// BatchUpdateCommitments applies a set of rotations atomically: if any
// employee has no active commitment, none of the updates land.
func (s *Store) BatchUpdateCommitments(updates []Update) error {
	wTx := s.stg.WriteTx()
	defer wTx.Discard()
	for _, u := range updates {
		if _, err := s.UpdateCommitmentTx(wTx, u.Employee, u.NewCommitment); err != nil {
			return fmt.Errorf("employee %s: %w", u.Employee.Hex(), err)
		}
	}
	return wTx.Commit()
}

// VerifyCommitment recomputes Poseidon(claimedSalary, blinding) and
// reports whether it matches the stored digest. A mismatch is a false
// return, not an error.
func (s *Store) VerifyCommitment(employee common.Address, claimedSalary uint64, blinding types.HexBytes) (bool, error) {
	rec, err := s.Commitment(employee)
	if err != nil {
		return false, err
	}
	computed, err := commitment.Commit(claimedSalary, blinding)
	if err != nil {
		return false, err
	}
	return computed.Equal(rec.Commitment), nil
}

func checkDigest(digest types.HexBytes) error {
	if len(digest) != types.DigestSize {
		return fmt.Errorf("commitment digest: expected %d bytes, got %d", types.DigestSize, len(digest))
	}
	return nil
}
