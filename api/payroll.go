package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// executePayroll settles a payroll batch atomically
// POST /payroll
func (a *API) executePayroll(w http.ResponseWriter, r *http.Request) {
	req := &executor.BatchRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	receipts, err := a.executor.ExecuteBatchPayroll(req)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, receipts)
}

// payment retrieves the settlement record for (employee, period)
// GET /payments/{employee}/{period}
func (a *API) payment(w http.ResponseWriter, r *http.Request) {
	employee := common.HexToAddress(chi.URLParam(r, EmployeeURLParam))
	rawPeriod := chi.URLParam(r, PeriodURLParam)
	period, err := strconv.ParseUint(rawPeriod, 10, 32)
	if err != nil {
		ErrMalformedParam.Withf("invalid period %q", rawPeriod).Write(w)
		return
	}
	rec, err := a.executor.Payment(employee, uint32(period))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, rec)
}

// events serves the durable payment event log
// GET /events?from=<seq>&max=<count>
func (a *API) events(w http.ResponseWriter, r *http.Request) {
	var from uint64
	var max int
	if raw := r.URL.Query().Get("from"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ErrMalformedParam.Withf("invalid from %q", raw).Write(w)
			return
		}
		from = v
	}
	if raw := r.URL.Query().Get("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ErrMalformedParam.Withf("invalid max %q", raw).Write(w)
			return
		}
		max = v
	}
	events, err := a.storage.Events(from, max)
	if err != nil {
		writeErr(w, err)
		return
	}
	if events == nil {
		events = []*types.PaymentEvent{}
	}
	httpWriteJSON(w, events)
}
