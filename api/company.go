package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

// registerCompany creates a new company
// POST /companies
func (a *API) registerCompany(w http.ResponseWriter, r *http.Request) {
	req := &RegisterCompany{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	company, err := a.registry.RegisterCompany(req.Admin, req.Treasury)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, company)
}

// company retrieves a company record
// GET /companies/{companyId}
func (a *API) company(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIDParam(w, r)
	if !ok {
		return
	}
	company, err := a.registry.Company(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, company)
}

// companyTotalPaid retrieves the running settled total of a company
// GET /companies/{companyId}/totalpaid
func (a *API) companyTotalPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIDParam(w, r)
	if !ok {
		return
	}
	if _, err := a.registry.Company(id); err != nil {
		writeErr(w, err)
		return
	}
	total, err := a.executor.TotalPaid(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, &TotalPaid{CompanyID: id, TotalPaid: (*types.BigInt)(total)})
}

// addEmployee enrolls an employee with their initial commitment
// POST /companies/{companyId}/employees
func (a *API) addEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIDParam(w, r)
	if !ok {
		return
	}
	req := &AddEmployee{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	rec, err := a.registry.AddEmployee(id, req.Address, req.Commitment)
	if err != nil {
		writeErr(w, err)
		return
	}
	log.Infow("employee enrolled", "company", uint64(id), "employee", req.Address.Hex())
	httpWriteJSON(w, rec)
}

// updateCommitment rotates an employee's salary commitment
// PUT /companies/{companyId}/employees/{employee}
func (a *API) updateCommitment(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIDParam(w, r)
	if !ok {
		return
	}
	employee := common.HexToAddress(chi.URLParam(r, EmployeeURLParam))
	req := &UpdateCommitment{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	rec, err := a.registry.UpdateSalaryCommitment(id, employee, req.Commitment)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, rec)
}

// removeEmployee removes an employee's binding and commitment
// DELETE /companies/{companyId}/employees/{employee}
func (a *API) removeEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := companyIDParam(w, r)
	if !ok {
		return
	}
	employee := common.HexToAddress(chi.URLParam(r, EmployeeURLParam))
	if err := a.registry.RemoveEmployee(id, employee); err != nil {
		writeErr(w, err)
		return
	}
	httpWriteOK(w)
}

// employeeCommitment retrieves the active commitment record
// GET /employees/{employee}/commitment
func (a *API) employeeCommitment(w http.ResponseWriter, r *http.Request) {
	employee := common.HexToAddress(chi.URLParam(r, EmployeeURLParam))
	rec, err := a.store.Commitment(employee)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, rec)
}

// newBlinding generates a fresh blinding factor for the caller's prover
// POST /commitments/blinding
func (a *API) newBlinding(w http.ResponseWriter, _ *http.Request) {
	blinding, err := commitment.GenerateBlinding()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &Blinding{Blinding: blinding})
}

func companyIDParam(w http.ResponseWriter, r *http.Request) (types.CompanyID, bool) {
	raw := chi.URLParam(r, CompanyURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ErrMalformedParam.Withf("invalid company id %q", raw).Write(w)
		return 0, false
	}
	return types.CompanyID(id), true
}
