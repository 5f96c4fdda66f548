// Package tests contains protocol-level integration tests wiring every
// component over a single storage instance, the way the daemon does.
package tests

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/zkpayroll/zk-payroll-contracts/audit"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/nullifiers"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/token"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"github.com/zkpayroll/zk-payroll-contracts/util"
	"github.com/zkpayroll/zk-payroll-contracts/verifier"
	"go.vocdoni.io/dvote/db/metadb"
)

// Env is a fully wired protocol instance over one storage database.
type Env struct {
	Storage  *storage.Storage
	Clock    *host.ManualClock
	Registry *registry.Registry
	Store    *commitments.Store
	Verifier *verifier.Verifier
	Backend  *verifier.MockBackend
	Executor *executor.Executor
	Audit    *audit.Module
	Ledger   *token.Ledger
	Bus      *host.Bus

	Admin    common.Address
	Treasury common.Address
}

// NewEnv wires all components with an open-auth host, a manual clock and
// the mock pairing backend, and installs a verification key admitting the
// three payment public inputs.
func NewEnv(t *testing.T) *Env {
	c := qt.New(t)
	stg := storage.New(metadb.NewTest(t))
	clock := host.NewManualClock(1_700_000_000)
	auth := host.AllowAll{}
	bus := host.NewBus()

	store := commitments.New(stg, clock)
	backend := verifier.NewMockBackend()
	vrf := verifier.New(stg, backend)
	c.Assert(vrf.Initialize(TestVerificationKey()), qt.IsNil)

	env := &Env{
		Storage:  stg,
		Clock:    clock,
		Registry: registry.New(stg, store, auth, clock),
		Store:    store,
		Verifier: vrf,
		Backend:  backend,
		Executor: executor.New(stg, vrf, nullifiers.New(stg, clock), auth, clock, bus),
		Audit:    audit.New(stg, auth, clock),
		Bus:      bus,
		Admin:    util.RandomAddress(),
		Treasury: util.RandomAddress(),
	}
	env.Ledger = token.NewLedger(stg, auth, env.Admin)
	return env
}

// TestVerificationKey builds a structurally valid key with three public
// inputs. Point contents are irrelevant under the mock backend.
func TestVerificationKey() *types.VerificationKey {
	vk := &types.VerificationKey{
		Alpha: make(types.HexBytes, types.G1PointSize),
		Beta:  make(types.HexBytes, types.G2PointSize),
		Gamma: make(types.HexBytes, types.G2PointSize),
		Delta: make(types.HexBytes, types.G2PointSize),
	}
	for i := 0; i < 4; i++ {
		vk.IC = append(vk.IC, make(types.HexBytes, types.G1PointSize))
	}
	return vk
}

// TestProof builds a structurally valid proof with a distinguishing A
// point.
func TestProof(a byte) types.Groth16Proof {
	p := types.Groth16Proof{
		A: make(types.HexBytes, types.G1PointSize),
		B: make(types.HexBytes, types.G2PointSize),
		C: make(types.HexBytes, types.G1PointSize),
	}
	p.A[0] = a
	return p
}

// RegisterCompany registers a company under the env admin and treasury.
func (e *Env) RegisterCompany(t *testing.T) *types.Company {
	company, err := e.Registry.RegisterCompany(e.Admin, e.Treasury)
	qt.Assert(t, err, qt.IsNil)
	return company
}

// Enroll enrolls an employee with a real Poseidon commitment over the
// given salary and returns the blinding factor.
func (e *Env) Enroll(t *testing.T, company types.CompanyID, employee common.Address, salary uint64) types.HexBytes {
	c := qt.New(t)
	blinding, err := commitment.GenerateBlinding()
	c.Assert(err, qt.IsNil)
	digest, err := commitment.Commit(salary, blinding)
	c.Assert(err, qt.IsNil)
	_, err = e.Registry.AddEmployee(company, employee, digest)
	c.Assert(err, qt.IsNil)
	return blinding
}

// Fund mints tokens into the treasury.
func (e *Env) Fund(t *testing.T, amount int64) {
	qt.Assert(t, e.Ledger.Mint(e.Treasury, big.NewInt(amount)), qt.IsNil)
}

// Balance returns a token balance as int64.
func (e *Env) Balance(t *testing.T, who common.Address) int64 {
	bal, err := e.Ledger.Balance(who)
	qt.Assert(t, err, qt.IsNil)
	return bal.Int64()
}
