package api

import (
	"encoding/json"
	"net/http"

	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

// installVerificationKey stores the Groth16 verification key, once
// POST /verifier/key
func (a *API) installVerificationKey(w http.ResponseWriter, r *http.Request) {
	vk := &types.VerificationKey{}
	if err := json.NewDecoder(r.Body).Decode(vk); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.verifier.Initialize(vk); err != nil {
		writeErr(w, err)
		return
	}
	log.Infow("verification key installed", "publicInputs", vk.NumPublicInputs())
	httpWriteOK(w)
}

// verificationKey retrieves the stored verification key
// GET /verifier/key
func (a *API) verificationKey(w http.ResponseWriter, _ *http.Request) {
	vk, err := a.verifier.VerificationKey()
	if err != nil {
		writeErr(w, err)
		return
	}
	httpWriteJSON(w, vk)
}
