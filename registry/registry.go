// Package registry manages company and employee lifecycle: company
// registration, enrollment of employees with their initial salary
// commitment, commitment rotation and removal. All mutating operations
// require the company admin.
package registry

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/log"
)

var (
	// ErrCompanyNotFound is returned when the company id is unknown.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrEmployeeNotFound is returned when an employee is not enrolled
	// with the given company.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Registry is the company and employee registry.
type Registry struct {
	stg   *storage.Storage
	store *commitments.Store
	auth  host.Authenticator
	clock host.Clock
}

// New creates a registry backed by the given storage and commitment store.
func New(stg *storage.Storage, store *commitments.Store, auth host.Authenticator, clock host.Clock) *Registry {
	return &Registry{stg: stg, store: store, auth: auth, clock: clock}
}

// RegisterCompany creates a company with a fresh sequential id. The id
// assignment and the record write share one transaction, so ids are never
// reused even across crashes.
func (r *Registry) RegisterCompany(admin, treasury common.Address) (*types.Company, error) {
	if err := r.auth.RequireAuth(admin); err != nil {
		return nil, err
	}
	wTx := r.stg.WriteTx()
	defer wTx.Discard()

	id, err := storage.NextCompanyIDTx(wTx)
	if err != nil {
		return nil, err
	}
	company := &types.Company{
		ID:        id,
		Admin:     admin,
		Treasury:  treasury,
		CreatedAt: r.clock.Timestamp(),
	}
	if err := storage.SetCompanyTx(wTx, company); err != nil {
		return nil, err
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("company registered", "id", uint64(id), "admin", admin.Hex())
	return company, nil
}

// Company returns a company by id.
func (r *Registry) Company(id types.CompanyID) (*types.Company, error) {
	company, err := r.stg.Company(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// Employee returns the company binding of an employee principal.
func (r *Registry) Employee(addr common.Address) (*types.Employee, error) {
	e, err := r.stg.Employee(addr)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

// AddEmployee enrolls an employee with their initial salary commitment.
// Re-enrolling an existing employee replaces the binding and resets the
// commitment to version 1 without double-counting.
func (r *Registry) AddEmployee(companyID types.CompanyID, employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	company, err := r.authCompany(companyID)
	if err != nil {
		return nil, err
	}
	wTx := r.stg.WriteTx()
	defer wTx.Discard()

	enrolled, err := storage.EmployeeTx(wTx, employee)
	switch {
	case err == nil && enrolled.CompanyID != companyID:
		return nil, fmt.Errorf("employee %s already enrolled with company %d", employee.Hex(), enrolled.CompanyID)
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}
	if err := storage.SetEmployeeTx(wTx, &types.Employee{
		CompanyID:  companyID,
		Address:    employee,
		EnrolledAt: r.clock.Timestamp(),
	}); err != nil {
		return nil, err
	}
	rec, err := r.store.StoreCommitmentTx(wTx, companyID, employee, digest)
	if err != nil {
		return nil, err
	}
	if enrolled == nil {
		company.EmployeeCount++
		if err := storage.SetCompanyTx(wTx, company); err != nil {
			return nil, err
		}
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	log.Debugw("employee enrolled", "company", uint64(companyID), "employee", employee.Hex())
	return rec, nil
}

// UpdateSalaryCommitment rotates the commitment of an enrolled employee.
func (r *Registry) UpdateSalaryCommitment(companyID types.CompanyID, employee common.Address, digest types.HexBytes) (*types.EmployeeCommitment, error) {
	if _, err := r.authCompany(companyID); err != nil {
		return nil, err
	}
	wTx := r.stg.WriteTx()
	defer wTx.Discard()

	if err := r.checkEnrolledTx(wTx, companyID, employee); err != nil {
		return nil, err
	}
	rec, err := r.store.UpdateCommitmentTx(wTx, employee, digest)
	if err != nil {
		return nil, err
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// RemoveEmployee removes the binding and the active commitment of an
// employee. Historical payment records and nullifiers are untouched.
func (r *Registry) RemoveEmployee(companyID types.CompanyID, employee common.Address) error {
	company, err := r.authCompany(companyID)
	if err != nil {
		return err
	}
	wTx := r.stg.WriteTx()
	defer wTx.Discard()

	if err := r.checkEnrolledTx(wTx, companyID, employee); err != nil {
		return err
	}
	if err := storage.DeleteEmployeeTx(wTx, employee); err != nil {
		return err
	}
	if err := storage.DeleteCommitmentTx(wTx, employee); err != nil {
		return err
	}
	if company.EmployeeCount > 0 {
		company.EmployeeCount--
	}
	if err := storage.SetCompanyTx(wTx, company); err != nil {
		return err
	}
	return wTx.Commit()
}

func (r *Registry) authCompany(companyID types.CompanyID) (*types.Company, error) {
	company, err := r.Company(companyID)
	if err != nil {
		return nil, err
	}
	if err := r.auth.RequireAuth(company.Admin); err != nil {
		return nil, err
	}
	return company, nil
}

func (r *Registry) checkEnrolledTx(rd db.Reader, companyID types.CompanyID, employee common.Address) error {
	enrolled, err := storage.EmployeeTx(rd, employee)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if enrolled.CompanyID != companyID {
		return ErrEmployeeNotFound
	}
	return nil
}
