package api

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// mint credits a token account; ledger admin only
// POST /token/mint
func (a *API) mint(w http.ResponseWriter, r *http.Request) {
	req := &Mint{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if req.Amount == nil {
		ErrInvalidAmount.Write(w)
		return
	}
	if err := a.ledger.Mint(req.To, req.Amount.MathBigInt()); err != nil {
		writeErr(w, err)
		return
	}
	httpWriteOK(w)
}

// balance reads a token account balance
// GET /token/balances/{account}
func (a *API) balance(w http.ResponseWriter, r *http.Request) {
	account := common.HexToAddress(chi.URLParam(r, AccountURLParam))
	bal, err := a.ledger.Balance(account)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, &AccountBalance{Account: account, Balance: (*types.BigInt)(bal)})
}
