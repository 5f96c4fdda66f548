package verifier

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db/metadb"
)

// testVK builds a structurally valid key admitting three public inputs.
// Point contents are irrelevant under the mock backend.
func testVK() *types.VerificationKey {
	return &types.VerificationKey{
		Alpha: make(types.HexBytes, types.G1PointSize),
		Beta:  make(types.HexBytes, types.G2PointSize),
		Gamma: make(types.HexBytes, types.G2PointSize),
		Delta: make(types.HexBytes, types.G2PointSize),
		IC: []types.HexBytes{
			make(types.HexBytes, types.G1PointSize),
			make(types.HexBytes, types.G1PointSize),
			make(types.HexBytes, types.G1PointSize),
			make(types.HexBytes, types.G1PointSize),
		},
	}
}

func testProof(a byte) *types.Groth16Proof {
	p := &types.Groth16Proof{
		A: make(types.HexBytes, types.G1PointSize),
		B: make(types.HexBytes, types.G2PointSize),
		C: make(types.HexBytes, types.G1PointSize),
	}
	p.A[0] = a
	return p
}

func testInputs() []types.HexBytes {
	return []types.HexBytes{
		make(types.HexBytes, types.DigestSize),
		make(types.HexBytes, types.DigestSize),
		make(types.HexBytes, types.DigestSize),
	}
}

func TestInitializeOnce(t *testing.T) {
	c := qt.New(t)
	v := New(storage.New(metadb.NewTest(t)), NewMockBackend())

	_, err := v.VerificationKey()
	c.Assert(err, qt.ErrorIs, ErrNotInitialized)

	c.Assert(v.Initialize(testVK()), qt.IsNil)
	c.Assert(v.Initialize(testVK()), qt.ErrorIs, ErrAlreadyInitialized)

	vk, err := v.VerificationKey()
	c.Assert(err, qt.IsNil)
	c.Assert(vk.NumPublicInputs(), qt.Equals, 3)
}

func TestInitializeRejectsMalformedKey(t *testing.T) {
	c := qt.New(t)
	v := New(storage.New(metadb.NewTest(t)), NewMockBackend())

	vk := testVK()
	vk.Alpha = vk.Alpha[:10]
	c.Assert(v.Initialize(vk), qt.IsNotNil)

	vk = testVK()
	vk.IC = nil
	c.Assert(v.Initialize(vk), qt.IsNotNil)
}

func TestVerifyProof(t *testing.T) {
	c := qt.New(t)
	backend := NewMockBackend()
	v := New(storage.New(metadb.NewTest(t)), backend)

	_, err := v.VerifyProof(testProof(1), testInputs())
	c.Assert(err, qt.ErrorIs, ErrNotInitialized)

	c.Assert(v.Initialize(testVK()), qt.IsNil)

	ok, err := v.VerifyProof(testProof(1), testInputs())
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	// Arity mismatch verifies false, no error.
	ok, err = v.VerifyProof(testProof(1), testInputs()[:2])
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	// Malformed proof verifies false, no error.
	bad := testProof(1)
	bad.B = bad.B[:32]
	ok, err = v.VerifyProof(bad, testInputs())
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	// Backend rejection.
	backend.Reject(testProof(9).A)
	ok, err = v.VerifyProof(testProof(9), testInputs())
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestVerifyBatchProofs(t *testing.T) {
	c := qt.New(t)
	backend := NewMockBackend()
	v := New(storage.New(metadb.NewTest(t)), backend)
	c.Assert(v.Initialize(testVK()), qt.IsNil)

	proofs := []types.Groth16Proof{*testProof(1), *testProof(2)}
	inputs := [][]types.HexBytes{testInputs(), testInputs()}

	ok, err := v.VerifyBatchProofs(proofs, inputs)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	backend.Reject(proofs[1].A)
	ok, err = v.VerifyBatchProofs(proofs, inputs)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	ok, err = v.VerifyBatchProofs(proofs, inputs[:1])
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}
