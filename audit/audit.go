// Package audit implements the view key subsystem: company admins grant
// scoped, expiring keys to auditors, who can then verify individual
// commitment openings or pull aggregate payment reports without ever
// seeing individual salaries beyond what their scope allows.
package audit

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/commitment"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

var (
	// ErrKeyNotFound is returned when the view key id is unknown.
	ErrKeyNotFound = errors.New("view key not found")
	// ErrWrongAuditor is returned when a key is presented by a principal
	// other than the auditor it was granted to.
	ErrWrongAuditor = errors.New("view key bound to a different auditor")
	// ErrKeyExpired is returned when the key's validity window is over.
	ErrKeyExpired = errors.New("view key expired")
	// ErrNotKeyGranter is returned when revocation is attempted by an
	// admin other than the granter.
	ErrNotKeyGranter = errors.New("only the granter can revoke a view key")
	// ErrInsufficientScope is returned when the key's scope does not
	// cover the requested operation.
	ErrInsufficientScope = errors.New("view key scope insufficient")
)

// Module is the audit component.
type Module struct {
	stg   *storage.Storage
	auth  host.Authenticator
	clock host.Clock
}

// New creates an audit module.
func New(stg *storage.Storage, auth host.Authenticator, clock host.Clock) *Module {
	return &Module{stg: stg, auth: auth, clock: clock}
}

// GenerateViewKey grants an auditor a scoped key valid for ttl seconds.
// The key id is derived from (company, auditor, nonce) with a monotonic
// per-pair nonce, so re-granting after expiry always yields a fresh id.
func (m *Module) GenerateViewKey(companyID types.CompanyID, auditor common.Address, scope types.AuditScope, ttl uint64) (*types.ViewKey, error) {
	company, err := m.stg.Company(companyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, registry.ErrCompanyNotFound
		}
		return nil, err
	}
	if err := m.auth.RequireAuth(company.Admin); err != nil {
		return nil, err
	}
	wTx := m.stg.WriteTx()
	defer wTx.Discard()

	nonce, err := storage.NextKeyNonceTx(wTx, companyID, auditor)
	if err != nil {
		return nil, err
	}
	now := m.clock.Timestamp()
	key := &types.ViewKey{
		ID:        deriveKeyID(companyID, auditor, nonce),
		CompanyID: companyID,
		Auditor:   auditor,
		GrantedBy: company.Admin,
		CreatedAt: now,
		ExpiresAt: now + ttl,
		Scope:     scope,
		Nonce:     nonce,
	}
	if err := storage.SetViewKeyTx(wTx, key); err != nil {
		return nil, err
	}
	if err := wTx.Commit(); err != nil {
		return nil, err
	}
	log.Infow("view key granted", "company", uint64(companyID),
		"auditor", auditor.Hex(), "scope", scope.String(), "expiresAt", key.ExpiresAt)
	return key, nil
}

// ViewKey returns a stored view key by id.
func (m *Module) ViewKey(id types.HexBytes) (*types.ViewKey, error) {
	key, err := m.stg.ViewKey(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return key, nil
}

// VerifyAccess reports whether the key exists, belongs to the auditor and
// has not expired.
func (m *Module) VerifyAccess(id types.HexBytes, auditor common.Address) bool {
	_, err := m.loadKey(id, auditor)
	return err == nil
}

// RevokeViewKey deletes a key before its expiry. Only the granting admin
// may revoke.
func (m *Module) RevokeViewKey(admin common.Address, id types.HexBytes) error {
	key, err := m.ViewKey(id)
	if err != nil {
		return err
	}
	if err := m.auth.RequireAuth(admin); err != nil {
		return err
	}
	if key.GrantedBy != admin {
		return ErrNotKeyGranter
	}
	return m.stg.DeleteViewKey(id)
}

// VerifyCommitmentWithKey recomputes the commitment from the claimed
// salary and blinding under the auditor's key and reports whether it
// matches the stored digest. AggregateOnly keys cannot open individual
// commitments.
func (m *Module) VerifyCommitmentWithKey(id types.HexBytes, auditor, employee common.Address, claimedSalary uint64, blinding types.HexBytes) (bool, error) {
	key, err := m.loadKey(id, auditor)
	if err != nil {
		return false, err
	}
	if key.Scope == types.ScopeAggregateOnly {
		return false, ErrInsufficientScope
	}
	rec, err := m.stg.Commitment(employee)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, registry.ErrEmployeeNotFound
		}
		return false, err
	}
	if rec.CompanyID != key.CompanyID {
		return false, registry.ErrEmployeeNotFound
	}
	computed, err := commitment.Commit(claimedSalary, blinding)
	if err != nil {
		return false, err
	}
	return computed.Equal(rec.Commitment), nil
}

// GenerateAggregateReport builds the payment summary of the key's company
// over [periodStart, periodEnd] in timestamp seconds. Any valid key scope
// may produce aggregates.
func (m *Module) GenerateAggregateReport(id types.HexBytes, auditor common.Address, periodStart, periodEnd uint64) (*types.AuditReport, error) {
	key, err := m.loadKey(id, auditor)
	if err != nil {
		return nil, err
	}
	company, err := m.stg.Company(key.CompanyID)
	if err != nil {
		return nil, err
	}
	events, err := m.stg.EventsInRange(key.CompanyID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, ev := range events {
		total.Add(total, ev.Amount.MathBigInt())
	}
	return &types.AuditReport{
		CompanyID:      key.CompanyID,
		TotalEmployees: company.EmployeeCount,
		TotalPaid:      (*types.BigInt)(total),
		PaymentCount:   uint32(len(events)),
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Verified:       true,
	}, nil
}

func (m *Module) loadKey(id types.HexBytes, auditor common.Address) (*types.ViewKey, error) {
	if err := m.auth.RequireAuth(auditor); err != nil {
		return nil, err
	}
	key, err := m.ViewKey(id)
	if err != nil {
		return nil, err
	}
	if key.Auditor != auditor {
		return nil, ErrWrongAuditor
	}
	// Expiry is strict: a key is valid only while now < expiresAt.
	if m.clock.Timestamp() >= key.ExpiresAt {
		return nil, ErrKeyExpired
	}
	return key, nil
}

func deriveKeyID(company types.CompanyID, auditor common.Address, nonce uint64) types.HexBytes {
	buf := make([]byte, 0, 8+common.AddressLength+8)
	buf = binary.BigEndian.AppendUint64(buf, uint64(company))
	buf = append(buf, auditor.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, nonce)
	id := sha256.Sum256(buf)
	return id[:]
}
