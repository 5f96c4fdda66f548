package storage

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// Commitment retrieves the active salary commitment record for an employee.
func (s *Storage) Commitment(employee common.Address) (*types.EmployeeCommitment, error) {
	c := &types.EmployeeCommitment{}
	if err := s.getArtifact(commitmentPrefix, employee.Bytes(), c); err != nil {
		return nil, err
	}
	return c, nil
}

// CommitmentTx reads a commitment record through an open transaction.
func CommitmentTx(rd db.Reader, employee common.Address) (*types.EmployeeCommitment, error) {
	c := &types.EmployeeCommitment{}
	if err := getArtifactFrom(rd, commitmentPrefix, employee.Bytes(), c); err != nil {
		return nil, err
	}
	return c, nil
}

// HasCommitment reports whether a commitment record exists.
func (s *Storage) HasCommitment(employee common.Address) (bool, error) {
	return s.hasArtifact(commitmentPrefix, employee.Bytes())
}

// SetCommitment stores a commitment record in its own transaction.
func (s *Storage) SetCommitment(c *types.EmployeeCommitment) error {
	return s.setArtifact(commitmentPrefix, c.Employee.Bytes(), c)
}

// SetCommitmentTx stores a commitment record through an open transaction.
func SetCommitmentTx(wTx db.WriteTx, c *types.EmployeeCommitment) error {
	return setArtifactIn(wTx, commitmentPrefix, c.Employee.Bytes(), c)
}

// DeleteCommitmentTx hard-deletes a commitment record.
func DeleteCommitmentTx(wTx db.WriteTx, employee common.Address) error {
	return deleteArtifactIn(wTx, commitmentPrefix, employee.Bytes())
}
