package commitments

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db/metadb"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func testStore(t *testing.T) (*Store, *host.ManualClock) {
	clock := host.NewManualClock(1000)
	return New(storage.New(metadb.NewTest(t)), clock), clock
}

func digest(b byte) types.HexBytes {
	d := make(types.HexBytes, types.DigestSize)
	d[0] = b
	return d
}

func TestStoreAndUpdate(t *testing.T) {
	c := qt.New(t)
	s, clock := testStore(t)

	rec, err := s.StoreCommitment(1, alice, digest(1))
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Version, qt.Equals, uint32(1))
	c.Assert(rec.CreatedAt, qt.Equals, uint64(1000))

	clock.Advance(50)
	rec, err = s.UpdateCommitment(alice, digest(2))
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Version, qt.Equals, uint32(2))
	c.Assert(rec.CreatedAt, qt.Equals, uint64(1000))
	c.Assert(rec.UpdatedAt, qt.Equals, uint64(1050))

	stored, err := s.Commitment(alice)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Commitment, qt.DeepEquals, digest(2))

	// Re-storing resets the version.
	rec, err = s.StoreCommitment(1, alice, digest(3))
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Version, qt.Equals, uint32(1))
}

func TestUpdateMissing(t *testing.T) {
	c := qt.New(t)
	s, _ := testStore(t)
	_, err := s.UpdateCommitment(alice, digest(1))
	c.Assert(err, qt.ErrorIs, ErrCommitmentNotFound)
}

func TestDigestLength(t *testing.T) {
	c := qt.New(t)
	s, _ := testStore(t)
	_, err := s.StoreCommitment(1, alice, digest(1)[:16])
	c.Assert(err, qt.IsNotNil)
}

func TestBatchUpdateAtomic(t *testing.T) {
	c := qt.New(t)
	s, _ := testStore(t)

	_, err := s.StoreCommitment(1, alice, digest(1))
	c.Assert(err, qt.IsNil)

	// Bob has no commitment, so the whole batch must fail and leave
	// alice untouched.
	err = s.BatchUpdateCommitments([]Update{
		{Employee: alice, NewCommitment: digest(7)},
		{Employee: bob, NewCommitment: digest(8)},
	})
	c.Assert(err, qt.ErrorIs, ErrCommitmentNotFound)

	rec, err := s.Commitment(alice)
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Commitment, qt.DeepEquals, digest(1))
	c.Assert(rec.Version, qt.Equals, uint32(1))

	// With both present the batch lands.
	_, err = s.StoreCommitment(1, bob, digest(2))
	c.Assert(err, qt.IsNil)
	c.Assert(s.BatchUpdateCommitments([]Update{
		{Employee: alice, NewCommitment: digest(7)},
		{Employee: bob, NewCommitment: digest(8)},
	}), qt.IsNil)

	rec, err = s.Commitment(bob)
	c.Assert(err, qt.IsNil)
	c.Assert(rec.Commitment, qt.DeepEquals, digest(8))
	c.Assert(rec.Version, qt.Equals, uint32(2))
}

func TestVerifyCommitment(t *testing.T) {
	c := qt.New(t)
	s, _ := testStore(t)

	blinding, err := commitment.GenerateBlinding()
	c.Assert(err, qt.IsNil)
	d, err := commitment.Commit(5000, blinding)
	c.Assert(err, qt.IsNil)

	_, err = s.StoreCommitment(1, alice, d)
	c.Assert(err, qt.IsNil)

	ok, err := s.VerifyCommitment(alice, 5000, blinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	ok, err = s.VerifyCommitment(alice, 5001, blinding)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	_, err = s.VerifyCommitment(bob, 5000, blinding)
	c.Assert(err, qt.ErrorIs, ErrCommitmentNotFound)
}
