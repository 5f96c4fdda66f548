// Package host models the execution environment the settlement protocol
// assumes: an authorization primitive, a timestamp/sequence source and an
// event publication mechanism. Transactional storage is provided separately
// by the storage package on top of dvote/db.
package host

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrUnauthorized is returned when a required principal did not authorize
// the call.
var ErrUnauthorized = fmt.Errorf("principal authorization missing")

// Authenticator is the host authorization primitive: RequireAuth succeeds
// iff the given principal signed (or otherwise authorized) the current
// invocation. Contracts never inspect credentials themselves.
type Authenticator interface {
	RequireAuth(principal common.Address) error
}

// AllowAll authorizes every principal. Test and development double,
// equivalent to mocking all authorizations in the host.
type AllowAll struct{}

func (AllowAll) RequireAuth(common.Address) error { return nil }

// StaticAuth authorizes a fixed set of principals, typically the signers
// recovered for the current invocation.
type StaticAuth struct {
	allowed map[common.Address]bool
}

func NewStaticAuth(principals ...common.Address) *StaticAuth {
	a := &StaticAuth{allowed: make(map[common.Address]bool, len(principals))}
	for _, p := range principals {
		a.allowed[p] = true
	}
	return a
}

func (a *StaticAuth) RequireAuth(principal common.Address) error {
	if !a.allowed[principal] {
		return fmt.Errorf("%w: %s", ErrUnauthorized, principal.Hex())
	}
	return nil
}

// RecoverSigner returns the principal that produced sig over payload. The
// digest is Keccak256(payload); sig is a 65-byte [R || S || V] secp256k1
// signature. Used by the API surface to build a StaticAuth for the request.
func RecoverSigner(payload, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}
	digest := crypto.Keccak256(payload)
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("cannot recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// SignPayload signs Keccak256(payload) with the given hex-encoded private
// key. Helper for clients and tests; the protocol itself never signs.
func SignPayload(payload []byte, hexKey string) ([]byte, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	return crypto.Sign(crypto.Keccak256(payload), key)
}
