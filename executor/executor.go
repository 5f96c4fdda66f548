// Package executor settles payroll batches. A batch runs inside one
// storage transaction: every entry is checked (commitment present, proof
// valid, nullifier fresh, period unpaid), then recorded, and only then is
// the treasury debited, in that order per entry. Any failure discards the
// transaction, so a batch either settles completely or leaves no trace.
package executor

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/nullifiers"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/token"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"github.com/zkpayroll/zk-payroll-contracts/verifier"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/log"
)

var (
	// ErrArrayLengthMismatch is returned when the parallel batch arrays
	// differ in length.
	ErrArrayLengthMismatch = errors.New("array length mismatch")
	// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrEmptyBatch is returned for a batch with no entries.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrAlreadyPaid is returned when (employee, period) was settled
	// before.
	ErrAlreadyPaid = errors.New("already paid for period")
	// ErrProofVerificationFailed is returned when a payment proof does
	// not verify.
	ErrProofVerificationFailed = errors.New("proof verification failed")
)

// EntryStatus tracks a batch entry through settlement.
type EntryStatus uint8

const (
	// StatusPending means the entry has not been checked yet.
	StatusPending EntryStatus = iota
	// StatusVerified means all checks passed but effects are not
	// committed.
	StatusVerified
	// StatusSettled means the entry's effects are committed.
	StatusSettled
	// StatusRejected means a check failed; nothing was committed.
	StatusRejected
)

func (s EntryStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusVerified:
		return "verified"
	case StatusSettled:
		return "settled"
	case StatusRejected:
		return "rejected"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// BatchRequest is a payroll batch in parallel-array form, mirroring the
// proof tooling output. All arrays must have equal length.
type BatchRequest struct {
	CompanyID  types.CompanyID      `json:"companyId"`
	Period     uint32               `json:"period"`
	Employees  []common.Address     `json:"employees"`
	Amounts    []*types.BigInt      `json:"amounts"`
	Proofs     []types.Groth16Proof `json:"proofs"`
	Nullifiers []types.HexBytes     `json:"nullifiers"`
}

// Receipt reports the outcome of one settled batch entry.
type Receipt struct {
	Employee common.Address       `json:"employee"`
	Status   EntryStatus          `json:"status"`
	Record   *types.PaymentRecord `json:"record"`
}

// Executor wires the verification gate, the nullifier set and the token
// ledger into the settlement flow.
type Executor struct {
	stg   *storage.Storage
	vrf   *verifier.Verifier
	nulls *nullifiers.Registry
	auth  host.Authenticator
	clock host.Clock
	bus   host.Publisher
}

// New creates a payroll executor.
func New(stg *storage.Storage, vrf *verifier.Verifier, nulls *nullifiers.Registry,
	auth host.Authenticator, clock host.Clock, bus host.Publisher) *Executor {
	if bus == nil {
		bus = host.NopPublisher{}
	}
	return &Executor{stg: stg, vrf: vrf, nulls: nulls, auth: auth, clock: clock, bus: bus}
}

// ExecuteBatchPayroll settles a batch atomically. On success every entry
// is settled and the payment events are published; on any failure no
// state changes at all.
func (e *Executor) ExecuteBatchPayroll(req *BatchRequest) ([]*Receipt, error) {
	n := len(req.Employees)
	if len(req.Amounts) != n || len(req.Proofs) != n || len(req.Nullifiers) != n {
		return nil, ErrArrayLengthMismatch
	}
	if n == 0 {
		return nil, ErrEmptyBatch
	}
	if n > types.MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	company, err := e.stg.Company(req.CompanyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, registry.ErrCompanyNotFound
		}
		return nil, err
	}
	if err := e.auth.RequireAuth(company.Admin); err != nil {
		return nil, err
	}

	wTx := e.stg.WriteTx()
	defer wTx.Discard()

	receipts := make([]*Receipt, 0, n)
	events := make([]*types.PaymentEvent, 0, n)
	for i := 0; i < n; i++ {
		rec, ev, err := e.settleEntryTx(wTx, company, req.Employees[i],
			req.Amounts[i].MathBigInt(), &req.Proofs[i], req.Nullifiers[i], req.Period)
		if err != nil {
			log.Debugw("batch entry rejected", "index", i,
				"employee", req.Employees[i].Hex(), "error", err.Error())
			return nil, fmt.Errorf("entry %d (%s): %w", i, req.Employees[i].Hex(), err)
		}
		receipts = append(receipts, &Receipt{Employee: req.Employees[i], Status: StatusVerified, Record: rec})
		events = append(events, ev)
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	for i, ev := range events {
		receipts[i].Status = StatusSettled
		e.bus.Publish(ev)
	}
	log.Infow("payroll batch settled", "company", uint64(req.CompanyID),
		"period", req.Period, "entries", n)
	return receipts, nil
}

// ExecutePayment settles a single payment with the same checks as a batch
// of one.
func (e *Executor) ExecutePayment(companyID types.CompanyID, employee common.Address,
	amount *types.BigInt, proof *types.Groth16Proof, nullifier types.HexBytes, period uint32) (*Receipt, error) {
	receipts, err := e.ExecuteBatchPayroll(&BatchRequest{
		CompanyID:  companyID,
		Period:     period,
		Employees:  []common.Address{employee},
		Amounts:    []*types.BigInt{amount},
		Proofs:     []types.Groth16Proof{*proof},
		Nullifiers: []types.HexBytes{nullifier},
	})
	if err != nil {
		return nil, err
	}
	return receipts[0], nil
}

// settleEntryTx runs the checks-effects-interactions sequence for one
// entry. The token transfer comes last: once funds move, every record
// justifying the movement is already written in the same transaction.
func (e *Executor) settleEntryTx(wTx db.WriteTx, company *types.Company, employee common.Address,
	amount *big.Int, proof *types.Groth16Proof, nullifier types.HexBytes, period uint32) (*types.PaymentRecord, *types.PaymentEvent, error) {
	// Checks.
	rec, err := storage.CommitmentTx(wTx, employee)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, commitments.ErrCommitmentNotFound
		}
		return nil, nil, err
	}
	if rec.CompanyID != company.ID {
		return nil, nil, registry.ErrEmployeeNotFound
	}
	recipientHash, err := commitment.RecipientHash(employee)
	if err != nil {
		return nil, nil, err
	}
	ok, err := e.vrf.VerifyProof(proof, []types.HexBytes{rec.Commitment, nullifier, recipientHash})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrProofVerificationFailed
	}
	paid, err := storage.HasPaymentTx(wTx, employee, period)
	if err != nil {
		return nil, nil, err
	}
	if paid {
		return nil, nil, ErrAlreadyPaid
	}

	// Effects.
	if err := e.nulls.RecordTx(wTx, nullifier); err != nil {
		return nil, nil, err
	}
	now := e.clock.Timestamp()
	payment := &types.PaymentRecord{
		CompanyID: company.ID,
		Employee:  employee,
		ProofHash: ethcrypto.Keccak256(proof.A, proof.B, proof.C),
		Timestamp: now,
		Period:    period,
	}
	if err := storage.SetPaymentTx(wTx, payment); err != nil {
		return nil, nil, err
	}
	if err := storage.AddTotalPaidTx(wTx, company.ID, amount); err != nil {
		return nil, nil, err
	}
	ev := &types.PaymentEvent{
		CompanyID: company.ID,
		Employee:  employee,
		Amount:    (*types.BigInt)(new(big.Int).Set(amount)),
		Period:    period,
		Timestamp: now,
	}
	if err := storage.AppendEventTx(wTx, ev); err != nil {
		return nil, nil, err
	}

	// Interactions.
	if err := token.TransferTx(wTx, company.Treasury, employee, amount); err != nil {
		return nil, nil, err
	}
	return payment, ev, nil
}

// Payment returns the settlement record for (employee, period),
// storage.ErrNotFound if the period is unpaid.
func (e *Executor) Payment(employee common.Address, period uint32) (*types.PaymentRecord, error) {
	return e.stg.Payment(employee, period)
}

// IsPaid reports whether (employee, period) has been settled.
func (e *Executor) IsPaid(employee common.Address, period uint32) (bool, error) {
	return e.stg.HasPayment(employee, period)
}

// TotalPaid returns the running settled total of a company.
func (e *Executor) TotalPaid(company types.CompanyID) (*big.Int, error) {
	return e.stg.TotalPaid(company)
}
