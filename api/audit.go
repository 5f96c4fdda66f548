package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

// grantViewKey grants an auditor a scoped, expiring view key
// POST /viewkeys
func (a *API) grantViewKey(w http.ResponseWriter, r *http.Request) {
	req := &GrantViewKey{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	key, err := a.audit.GenerateViewKey(req.CompanyID, req.Auditor, req.Scope, req.TTL)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, key)
}

// viewKey retrieves a view key by id
// GET /viewkeys/{keyId}
func (a *API) viewKey(w http.ResponseWriter, r *http.Request) {
	id, ok := viewKeyIDParam(w, r)
	if !ok {
		return
	}
	key, err := a.audit.ViewKey(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, key)
}

// revokeViewKey revokes a view key before expiry; granter only
// DELETE /viewkeys/{keyId}
func (a *API) revokeViewKey(w http.ResponseWriter, r *http.Request) {
	id, ok := viewKeyIDParam(w, r)
	if !ok {
		return
	}
	req := &RevokeViewKey{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.audit.RevokeViewKey(req.Admin, id); err != nil {
		writeErr(w, err)
		return
	}
	log.Infow("view key revoked", "keyId", id.String(), "admin", req.Admin.Hex())
	httpWriteOK(w)
}

// auditVerify verifies a commitment opening under a view key. A mismatch
// between the claimed opening and the stored digest is reported both in
// the body and through the commitment mismatch error code.
// POST /audit/verify
func (a *API) auditVerify(w http.ResponseWriter, r *http.Request) {
	req := &AuditVerify{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	valid, err := a.audit.VerifyCommitmentWithKey(req.KeyID, req.Auditor, req.Employee,
		req.ClaimedSalary, req.Blinding)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !valid {
		ErrCommitmentMismatch.Write(w)
		return
	}
	httpWriteJSON(w, &AuditVerifyResult{Valid: true})
}

// auditReport builds an aggregate payment report for the key's company
// POST /audit/report
func (a *API) auditReport(w http.ResponseWriter, r *http.Request) {
	req := &AuditReportRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	report, err := a.audit.GenerateAggregateReport(req.KeyID, req.Auditor, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, report)
}

func viewKeyIDParam(w http.ResponseWriter, r *http.Request) (types.HexBytes, bool) {
	var id types.HexBytes
	if err := id.FromHex(chi.URLParam(r, ViewKeyURLParam)); err != nil {
		ErrMalformedParam.Withf("invalid view key id: %v", err).Write(w)
		return nil, false
	}
	return id, true
}
