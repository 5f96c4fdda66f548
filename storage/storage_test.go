package storage

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db/metadb"
)

var alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")

func TestCompanyRoundTrip(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	_, err := stg.Company(1)
	c.Assert(err, qt.ErrorIs, ErrNotFound)

	company := &types.Company{ID: 1, Admin: alice, EmployeeCount: 2, CreatedAt: 42}
	c.Assert(stg.SetCompany(company), qt.IsNil)

	got, err := stg.Company(1)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, company)
}

func TestCompanyIDSequence(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	wTx := stg.WriteTx()
	id, err := NextCompanyIDTx(wTx)
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, types.CompanyID(1))
	c.Assert(wTx.Commit(), qt.IsNil)

	// A discarded transaction does not consume an id.
	wTx = stg.WriteTx()
	id, err = NextCompanyIDTx(wTx)
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, types.CompanyID(2))
	wTx.Discard()

	wTx = stg.WriteTx()
	id, err = NextCompanyIDTx(wTx)
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, types.CompanyID(2))
	c.Assert(wTx.Commit(), qt.IsNil)
}

func TestTotalPaidAccumulation(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	total, err := stg.TotalPaid(1)
	c.Assert(err, qt.IsNil)
	c.Assert(total.Sign(), qt.Equals, 0)

	wTx := stg.WriteTx()
	c.Assert(AddTotalPaidTx(wTx, 1, big.NewInt(5000)), qt.IsNil)
	c.Assert(AddTotalPaidTx(wTx, 1, big.NewInt(3000)), qt.IsNil)
	c.Assert(wTx.Commit(), qt.IsNil)

	total, err = stg.TotalPaid(1)
	c.Assert(err, qt.IsNil)
	c.Assert(total.Cmp(big.NewInt(8000)), qt.Equals, 0)
}

func TestEventLog(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	wTx := stg.WriteTx()
	for i := 0; i < 5; i++ {
		ev := &types.PaymentEvent{
			CompanyID: types.CompanyID(1 + i%2),
			Employee:  alice,
			Amount:    types.NewBigInt(int64(1000 * (i + 1))),
			Period:    uint32(i + 1),
			Timestamp: uint64(100 * (i + 1)),
		}
		c.Assert(AppendEventTx(wTx, ev), qt.IsNil)
		c.Assert(ev.Seq, qt.Equals, uint64(i+1))
	}
	c.Assert(wTx.Commit(), qt.IsNil)

	events, err := stg.Events(0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 5)

	events, err = stg.Events(3, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 3)
	c.Assert(events[0].Seq, qt.Equals, uint64(3))

	events, err = stg.Events(0, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 2)

	// Company 1 events with timestamps 100, 300, 500; range [100, 300]
	// keeps two.
	events, err = stg.EventsInRange(1, 100, 300)
	c.Assert(err, qt.IsNil)
	c.Assert(events, qt.HasLen, 2)
}

func TestPaymentKeyIsolation(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	wTx := stg.WriteTx()
	c.Assert(SetPaymentTx(wTx, &types.PaymentRecord{
		CompanyID: 1, Employee: alice, Period: 1, Timestamp: 100,
	}), qt.IsNil)
	c.Assert(wTx.Commit(), qt.IsNil)

	has, err := stg.HasPayment(alice, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(has, qt.IsTrue)
	has, err = stg.HasPayment(alice, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(has, qt.IsFalse)
}
