package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zkpayroll/zk-payroll-contracts/audit"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/nullifiers"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/token"
	"github.com/zkpayroll/zk-payroll-contracts/verifier"
	"go.vocdoni.io/dvote/log"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	if _, err := w.Write(jdata); err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// writeErr maps component sentinel errors to their stable API error codes
// and writes the response. Unknown errors become a generic 500.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrCompanyNotFound):
		ErrCompanyNotFound.Write(w)
	case errors.Is(err, registry.ErrEmployeeNotFound):
		ErrEmployeeNotFound.Write(w)
	case errors.Is(err, commitments.ErrCommitmentNotFound):
		ErrCommitmentNotFound.Write(w)
	case errors.Is(err, executor.ErrArrayLengthMismatch):
		ErrArrayLengthMismatch.Write(w)
	case errors.Is(err, executor.ErrBatchTooLarge):
		ErrBatchTooLarge.Write(w)
	case errors.Is(err, executor.ErrEmptyBatch):
		ErrEmptyBatch.Write(w)
	case errors.Is(err, executor.ErrAlreadyPaid):
		ErrAlreadyPaid.Write(w)
	case errors.Is(err, executor.ErrProofVerificationFailed):
		ErrProofInvalid.WithErr(err).Write(w)
	case errors.Is(err, nullifiers.ErrNullifierAlreadyUsed):
		ErrNullifierUsed.WithErr(err).Write(w)
	case errors.Is(err, verifier.ErrAlreadyInitialized):
		ErrVerifierInitialized.Write(w)
	case errors.Is(err, verifier.ErrNotInitialized):
		ErrVerifierNotReady.Write(w)
	case errors.Is(err, audit.ErrKeyNotFound):
		ErrViewKeyNotFound.Write(w)
	case errors.Is(err, audit.ErrKeyExpired):
		ErrViewKeyExpired.Write(w)
	case errors.Is(err, audit.ErrWrongAuditor):
		ErrWrongAuditor.Write(w)
	case errors.Is(err, audit.ErrNotKeyGranter):
		ErrNotKeyGranter.Write(w)
	case errors.Is(err, audit.ErrInsufficientScope):
		ErrInsufficientScope.Write(w)
	case errors.Is(err, token.ErrInsufficientBalance):
		ErrInsufficientBalance.Write(w)
	case errors.Is(err, token.ErrInvalidAmount):
		ErrInvalidAmount.Write(w)
	case errors.Is(err, host.ErrUnauthorized):
		ErrUnauthorized.WithErr(err).Write(w)
	case errors.Is(err, storage.ErrNotFound):
		ErrResourceNotFound.Write(w)
	default:
		ErrGenericInternalServerError.WithErr(err).Write(w)
	}
}
