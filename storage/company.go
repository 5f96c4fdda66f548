package storage

import (
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// Company retrieves a company by id. Returns ErrNotFound if unknown.
func (s *Storage) Company(id types.CompanyID) (*types.Company, error) {
	c := &types.Company{}
	if err := s.getArtifact(companyPrefix, companyKey(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// CompanyTx reads a company through an open transaction.
func CompanyTx(rd db.Reader, id types.CompanyID) (*types.Company, error) {
	c := &types.Company{}
	if err := getArtifactFrom(rd, companyPrefix, companyKey(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCompany stores a company record in its own transaction.
func (s *Storage) SetCompany(c *types.Company) error {
	return s.setArtifact(companyPrefix, companyKey(c.ID), c)
}

// SetCompanyTx stores a company record through an open transaction.
func SetCompanyTx(wTx db.WriteTx, c *types.Company) error {
	return setArtifactIn(wTx, companyPrefix, companyKey(c.ID), c)
}

// NextCompanyIDTx assigns the next company id from the sequence counter.
// The read-increment-write happens under the same transaction as the
// company record it gates, so ids are assigned once, monotonically, and
// never reused.
func NextCompanyIDTx(wTx db.WriteTx) (types.CompanyID, error) {
	next, err := nextCounterTx(wTx, companyCounterKey)
	if err != nil {
		return 0, err
	}
	return types.CompanyID(next), nil
}

func nextCounterTx(wTx db.WriteTx, name []byte) (uint64, error) {
	return nextPrefixedCounterTx(wTx, counterPrefix, name)
}

func nextPrefixedCounterTx(wTx db.WriteTx, prefix, name []byte) (uint64, error) {
	counters := prefixeddb.NewPrefixedWriteTx(wTx, prefix)
	var next uint64 = 1
	data, err := counters.Get(name)
	switch {
	case err == nil:
		next = binary.BigEndian.Uint64(data) + 1
	case errors.Is(err, db.ErrKeyNotFound):
	default:
		return 0, err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := counters.Set(name, buf); err != nil {
		return 0, err
	}
	return next, nil
}

// Employee retrieves the company binding for an employee principal.
func (s *Storage) Employee(addr common.Address) (*types.Employee, error) {
	e := &types.Employee{}
	if err := s.getArtifact(employeePrefix, addr.Bytes(), e); err != nil {
		return nil, err
	}
	return e, nil
}

// EmployeeTx reads an employee binding through an open transaction.
func EmployeeTx(rd db.Reader, addr common.Address) (*types.Employee, error) {
	e := &types.Employee{}
	if err := getArtifactFrom(rd, employeePrefix, addr.Bytes(), e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetEmployeeTx stores an employee binding through an open transaction.
func SetEmployeeTx(wTx db.WriteTx, e *types.Employee) error {
	return setArtifactIn(wTx, employeePrefix, e.Address.Bytes(), e)
}

// DeleteEmployeeTx hard-deletes an employee binding.
func DeleteEmployeeTx(wTx db.WriteTx, addr common.Address) error {
	return deleteArtifactIn(wTx, employeePrefix, addr.Bytes())
}
