package audit

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db/metadb"
)

var (
	admin   = common.HexToAddress("0x0000000000000000000000000000000000000ad1")
	auditor = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	alice   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
)

func testModule(t *testing.T) (*Module, *storage.Storage, *host.ManualClock) {
	stg := storage.New(metadb.NewTest(t))
	clock := host.NewManualClock(1000)
	m := New(stg, host.AllowAll{}, clock)

	err := stg.SetCompany(&types.Company{
		ID:            1,
		Admin:         admin,
		EmployeeCount: 3,
		CreatedAt:     900,
	})
	qt.Assert(t, err, qt.IsNil)
	return m, stg, clock
}

func TestGenerateViewKey(t *testing.T) {
	c := qt.New(t)
	m, _, _ := testModule(t)

	key, err := m.GenerateViewKey(1, auditor, types.ScopeFullCompany, 3600)
	c.Assert(err, qt.IsNil)
	c.Assert(key.ID, qt.HasLen, types.DigestSize)
	c.Assert(key.ExpiresAt, qt.Equals, uint64(4600))
	c.Assert(key.Nonce, qt.Equals, uint64(1))

	// Re-granting to the same auditor yields a fresh id.
	again, err := m.GenerateViewKey(1, auditor, types.ScopeFullCompany, 3600)
	c.Assert(err, qt.IsNil)
	c.Assert(again.Nonce, qt.Equals, uint64(2))
	c.Assert(again.ID.Equal(key.ID), qt.IsFalse)

	_, err = m.GenerateViewKey(9, auditor, types.ScopeFullCompany, 3600)
	c.Assert(err, qt.ErrorIs, registry.ErrCompanyNotFound)
}

func TestVerifyAccess(t *testing.T) {
	c := qt.New(t)
	m, _, clock := testModule(t)

	key, err := m.GenerateViewKey(1, auditor, types.ScopeTimeRange, 100)
	c.Assert(err, qt.IsNil)

	c.Assert(m.VerifyAccess(key.ID, auditor), qt.IsTrue)
	c.Assert(m.VerifyAccess(key.ID, admin), qt.IsFalse)
	c.Assert(m.VerifyAccess(make(types.HexBytes, 32), auditor), qt.IsFalse)

	// Expiry is strict: at exactly expiresAt the key is dead.
	clock.Set(key.ExpiresAt - 1)
	c.Assert(m.VerifyAccess(key.ID, auditor), qt.IsTrue)
	clock.Set(key.ExpiresAt)
	c.Assert(m.VerifyAccess(key.ID, auditor), qt.IsFalse)
}

func TestRevokeViewKey(t *testing.T) {
	c := qt.New(t)
	m, _, _ := testModule(t)

	key, err := m.GenerateViewKey(1, auditor, types.ScopeFullCompany, 3600)
	c.Assert(err, qt.IsNil)

	c.Assert(m.RevokeViewKey(auditor, key.ID), qt.ErrorIs, ErrNotKeyGranter)
	c.Assert(m.RevokeViewKey(admin, key.ID), qt.IsNil)
	c.Assert(m.VerifyAccess(key.ID, auditor), qt.IsFalse)
	c.Assert(m.RevokeViewKey(admin, key.ID), qt.ErrorIs, ErrKeyNotFound)
}

func TestVerifyCommitmentWithKey(t *testing.T) {
	c := qt.New(t)
	m, stg, _ := testModule(t)

	blinding, err := commitment.GenerateBlinding()
	c.Assert(err, qt.IsNil)
	digest, err := commitment.Commit(5000, blinding)
	c.Assert(err, qt.IsNil)
	c.Assert(stg.SetCommitment(&types.EmployeeCommitment{
		CompanyID:  1,
		Employee:   alice,
		Commitment: digest,
		Version:    1,
	}), qt.IsNil)

	key, err := m.GenerateViewKey(1, auditor, types.ScopeEmployeeList, 3600)
	c.Assert(err, qt.IsNil)

	ok, err := m.VerifyCommitmentWithKey(key.ID, auditor, alice, 5000, blinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	ok, err = m.VerifyCommitmentWithKey(key.ID, auditor, alice, 4999, blinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	_, err = m.VerifyCommitmentWithKey(key.ID, admin, alice, 5000, blinding)
	c.Assert(err, qt.ErrorIs, ErrWrongAuditor)

	// Aggregate-only keys cannot open individual commitments.
	aggKey, err := m.GenerateViewKey(1, auditor, types.ScopeAggregateOnly, 3600)
	c.Assert(err, qt.IsNil)
	_, err = m.VerifyCommitmentWithKey(aggKey.ID, auditor, alice, 5000, blinding)
	c.Assert(err, qt.ErrorIs, ErrInsufficientScope)
}

func TestGenerateAggregateReport(t *testing.T) {
	c := qt.New(t)
	m, stg, _ := testModule(t)

	// Seed the durable event log: two payments in range, one out of
	// range, one for another company.
	wTx := stg.WriteTx()
	for _, ev := range []*types.PaymentEvent{
		{CompanyID: 1, Employee: alice, Amount: types.NewBigInt(5000), Period: 1, Timestamp: 1100},
		{CompanyID: 1, Employee: alice, Amount: types.NewBigInt(6000), Period: 2, Timestamp: 1200},
		{CompanyID: 1, Employee: alice, Amount: types.NewBigInt(7000), Period: 3, Timestamp: 5000},
		{CompanyID: 2, Employee: alice, Amount: types.NewBigInt(9000), Period: 1, Timestamp: 1100},
	} {
		c.Assert(storage.AppendEventTx(wTx, ev), qt.IsNil)
	}
	c.Assert(wTx.Commit(), qt.IsNil)

	key, err := m.GenerateViewKey(1, auditor, types.ScopeAggregateOnly, 3600)
	c.Assert(err, qt.IsNil)

	report, err := m.GenerateAggregateReport(key.ID, auditor, 1000, 2000)
	c.Assert(err, qt.IsNil)
	c.Assert(report.CompanyID, qt.Equals, types.CompanyID(1))
	c.Assert(report.TotalEmployees, qt.Equals, uint32(3))
	c.Assert(report.PaymentCount, qt.Equals, uint32(2))
	c.Assert(report.TotalPaid.MathBigInt().Cmp(big.NewInt(11000)), qt.Equals, 0)
	c.Assert(report.Verified, qt.IsTrue)

	_, err = m.GenerateAggregateReport(key.ID, admin, 1000, 2000)
	c.Assert(err, qt.ErrorIs, ErrWrongAuditor)
}
