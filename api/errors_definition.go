package api

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400, 402, 403 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// If you notice there's a gap, DON'T fill it in, that code was used in the past and shouldn't be reused.
var (
	ErrResourceNotFound     = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody        = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrInvalidSignature     = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid signature")}
	ErrMalformedParam       = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed URL parameter")}
	ErrCompanyNotFound      = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("company not found")}
	ErrEmployeeNotFound     = Error{Code: 40008, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("employee not found")}
	ErrCommitmentNotFound   = Error{Code: 40009, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("commitment not found")}
	ErrArrayLengthMismatch  = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("array length mismatch")}
	ErrBatchTooLarge        = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("batch too large")}
	ErrNullifierUsed        = Error{Code: 40012, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("nullifier already used")}
	ErrAlreadyPaid          = Error{Code: 40013, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("already paid for period")}
	ErrProofInvalid         = Error{Code: 40014, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("proof verification failed")}
	ErrUnauthorized         = Error{Code: 40015, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("unauthorized")}
	ErrViewKeyNotFound      = Error{Code: 40016, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("view key not found")}
	ErrViewKeyExpired       = Error{Code: 40017, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("view key expired")}
	ErrWrongAuditor         = Error{Code: 40018, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("view key bound to a different auditor")}
	ErrNotKeyGranter        = Error{Code: 40019, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("only the granter can revoke a view key")}
	ErrInsufficientScope    = Error{Code: 40020, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("view key scope insufficient")}
	ErrCommitmentMismatch   = Error{Code: 40021, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("commitment mismatch")}
	ErrInsufficientBalance  = Error{Code: 40022, HTTPstatus: http.StatusPaymentRequired, Err: fmt.Errorf("insufficient balance")}
	ErrVerifierInitialized  = Error{Code: 40023, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("verifier already initialized")}
	ErrVerifierNotReady     = Error{Code: 40024, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("verifier not initialized")}
	ErrInvalidAmount        = Error{Code: 40025, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid amount")}
	ErrEmptyBatch           = Error{Code: 40026, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("empty batch")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)
