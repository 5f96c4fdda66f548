package tests

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/nullifiers"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"github.com/zkpayroll/zk-payroll-contracts/util"
)

func freshNullifier() types.HexBytes {
	return util.RandomBytes(types.DigestSize)
}

// TestFullPayrollLifecycle runs the whole protocol: company registration,
// enrollment with real Poseidon commitments, treasury funding, batch
// settlement, audit key issuance and aggregate reporting.
func TestFullPayrollLifecycle(t *testing.T) {
	c := qt.New(t)
	env := NewEnv(t)

	company := env.RegisterCompany(t)
	alice := util.RandomAddress()
	bob := util.RandomAddress()
	aliceBlinding := env.Enroll(t, company.ID, alice, 5000)
	env.Enroll(t, company.ID, bob, 3000)
	env.Fund(t, 10000)

	events, cancel := env.Bus.Subscribe()
	defer cancel()

	receipts, err := env.Executor.ExecuteBatchPayroll(&executor.BatchRequest{
		CompanyID:  company.ID,
		Period:     202601,
		Employees:  []common.Address{alice, bob},
		Amounts:    []*types.BigInt{types.NewBigInt(5000), types.NewBigInt(3000)},
		Proofs:     []types.Groth16Proof{TestProof(1), TestProof(2)},
		Nullifiers: []types.HexBytes{freshNullifier(), freshNullifier()},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(receipts, qt.HasLen, 2)

	c.Assert(env.Balance(t, alice), qt.Equals, int64(5000))
	c.Assert(env.Balance(t, bob), qt.Equals, int64(3000))
	c.Assert(env.Balance(t, env.Treasury), qt.Equals, int64(2000))

	total, err := env.Executor.TotalPaid(company.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(total.Cmp(big.NewInt(8000)), qt.Equals, 0)

	// Both events reached the live bus.
	first := <-events
	second := <-events
	c.Assert(first.Seq, qt.Equals, uint64(1))
	c.Assert(second.Seq, qt.Equals, uint64(2))

	// Auditor flow: aggregate report plus an individual opening check.
	auditor := util.RandomAddress()
	key, err := env.Audit.GenerateViewKey(company.ID, auditor, types.ScopeFullCompany, 3600)
	c.Assert(err, qt.IsNil)

	now := env.Clock.Timestamp()
	report, err := env.Audit.GenerateAggregateReport(key.ID, auditor, now-10, now+10)
	c.Assert(err, qt.IsNil)
	c.Assert(report.PaymentCount, qt.Equals, uint32(2))
	c.Assert(report.TotalPaid.MathBigInt().Cmp(big.NewInt(8000)), qt.Equals, 0)
	c.Assert(report.TotalEmployees, qt.Equals, uint32(2))
	c.Assert(report.Verified, qt.IsTrue)

	ok, err := env.Audit.VerifyCommitmentWithKey(key.ID, auditor, alice, 5000, aliceBlinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	ok, err = env.Audit.VerifyCommitmentWithKey(key.ID, auditor, alice, 6000, aliceBlinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

// TestDoubleSettlementRejected checks both replay protections: the
// nullifier set across periods and the write-once payment record within a
// period.
func TestDoubleSettlementRejected(t *testing.T) {
	c := qt.New(t)
	env := NewEnv(t)

	company := env.RegisterCompany(t)
	alice := util.RandomAddress()
	env.Enroll(t, company.ID, alice, 5000)
	env.Fund(t, 20000)

	null := freshNullifier()
	proof := TestProof(1)
	_, err := env.Executor.ExecutePayment(company.ID, alice, types.NewBigInt(5000), &proof, null, 1)
	c.Assert(err, qt.IsNil)

	_, err = env.Executor.ExecutePayment(company.ID, alice, types.NewBigInt(5000), &proof, null, 2)
	c.Assert(err, qt.ErrorIs, nullifiers.ErrNullifierAlreadyUsed)

	_, err = env.Executor.ExecutePayment(company.ID, alice, types.NewBigInt(5000), &proof, freshNullifier(), 1)
	c.Assert(err, qt.ErrorIs, executor.ErrAlreadyPaid)

	c.Assert(env.Balance(t, alice), qt.Equals, int64(5000))
}

// TestFailedBatchLeavesNoTrace drives a batch into every rejection path
// and checks that storage is untouched afterwards.
func TestFailedBatchLeavesNoTrace(t *testing.T) {
	c := qt.New(t)
	env := NewEnv(t)

	company := env.RegisterCompany(t)
	alice := util.RandomAddress()
	env.Enroll(t, company.ID, alice, 5000)
	env.Fund(t, 10000)

	stranger := util.RandomAddress()
	null1, null2 := freshNullifier(), freshNullifier()

	// Entry two has no commitment.
	_, err := env.Executor.ExecuteBatchPayroll(&executor.BatchRequest{
		CompanyID:  company.ID,
		Period:     1,
		Employees:  []common.Address{alice, stranger},
		Amounts:    []*types.BigInt{types.NewBigInt(5000), types.NewBigInt(1000)},
		Proofs:     []types.Groth16Proof{TestProof(1), TestProof(2)},
		Nullifiers: []types.HexBytes{null1, null2},
	})
	c.Assert(err, qt.IsNotNil)

	// Mismatched arrays.
	_, err = env.Executor.ExecuteBatchPayroll(&executor.BatchRequest{
		CompanyID:  company.ID,
		Period:     1,
		Employees:  []common.Address{alice},
		Amounts:    []*types.BigInt{types.NewBigInt(5000)},
		Proofs:     []types.Groth16Proof{TestProof(1), TestProof(2)},
		Nullifiers: []types.HexBytes{null1},
	})
	c.Assert(err, qt.ErrorIs, executor.ErrArrayLengthMismatch)

	// No payment, no nullifier burn, no balance movement, no events.
	c.Assert(env.Balance(t, alice), qt.Equals, int64(0))
	c.Assert(env.Balance(t, env.Treasury), qt.Equals, int64(10000))
	used, err := env.Storage.HasNullifier(null1)
	c.Assert(err, qt.IsNil)
	c.Assert(used, qt.IsFalse)
	paid, err := env.Executor.IsPaid(alice, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(paid, qt.IsFalse)
	events, err := env.Storage.Events(0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 0)

	// The same batch settles once the bad entry is removed.
	_, err = env.Executor.ExecuteBatchPayroll(&executor.BatchRequest{
		CompanyID:  company.ID,
		Period:     1,
		Employees:  []common.Address{alice},
		Amounts:    []*types.BigInt{types.NewBigInt(5000)},
		Proofs:     []types.Groth16Proof{TestProof(1)},
		Nullifiers: []types.HexBytes{null1},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(env.Balance(t, alice), qt.Equals, int64(5000))
}

// TestViewKeyExpiryWindow checks strict expiry against the manual clock.
func TestViewKeyExpiryWindow(t *testing.T) {
	c := qt.New(t)
	env := NewEnv(t)

	company := env.RegisterCompany(t)
	auditor := util.RandomAddress()
	key, err := env.Audit.GenerateViewKey(company.ID, auditor, types.ScopeAggregateOnly, 100)
	c.Assert(err, qt.IsNil)

	c.Assert(env.Audit.VerifyAccess(key.ID, auditor), qt.IsTrue)
	env.Clock.Advance(99)
	c.Assert(env.Audit.VerifyAccess(key.ID, auditor), qt.IsTrue)
	env.Clock.Advance(1)
	c.Assert(env.Audit.VerifyAccess(key.ID, auditor), qt.IsFalse)
}
