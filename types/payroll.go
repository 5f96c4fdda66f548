package types

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	// DigestSize is the byte length of commitments, nullifiers and view
	// key identifiers.
	DigestSize = 32

	// MaxBatchSize caps the number of entries per payroll batch.
	// Conservative default; adjust if benchmarking shows a higher safe
	// limit for the host environment.
	MaxBatchSize = 50
)

// CompanyID identifies a registered company. Values are assigned once from
// a monotonic sequence counter and never reused.
type CompanyID uint64

// Company holds the registration data of an employer.
type Company struct {
	ID            CompanyID      `json:"id"            cbor:"0,keyasint"`
	Admin         common.Address `json:"admin"         cbor:"1,keyasint"`
	Treasury      common.Address `json:"treasury"      cbor:"2,keyasint"`
	EmployeeCount uint32         `json:"employeeCount" cbor:"3,keyasint"`
	CreatedAt     uint64         `json:"createdAt"     cbor:"4,keyasint"`
}

// Employee binds an employee principal to its company. The salary
// commitment itself lives in the commitment store.
type Employee struct {
	CompanyID CompanyID      `json:"companyId"  cbor:"0,keyasint"`
	Address   common.Address `json:"address"    cbor:"1,keyasint"`
	EnrolledAt uint64        `json:"enrolledAt" cbor:"2,keyasint"`
}

// EmployeeCommitment is the versioned salary commitment record for one
// employee. The commitment bytes are opaque: they are compared for equality
// or handed to the proof verifier, never interpreted.
type EmployeeCommitment struct {
	CompanyID  CompanyID      `json:"companyId"  cbor:"0,keyasint"`
	Employee   common.Address `json:"employee"   cbor:"1,keyasint"`
	Commitment HexBytes       `json:"commitment" cbor:"2,keyasint"`
	Version    uint32         `json:"version"    cbor:"3,keyasint"`
	CreatedAt  uint64         `json:"createdAt"  cbor:"4,keyasint"`
	UpdatedAt  uint64         `json:"updatedAt"  cbor:"5,keyasint"`
}

// NullifierRecord marks a one-time payment token as consumed. Presence of a
// record is permanent; there is no delete operation.
type NullifierRecord struct {
	Value  HexBytes `json:"value"  cbor:"0,keyasint"`
	UsedAt uint64   `json:"usedAt" cbor:"1,keyasint"`
}

// PaymentRecord is the write-once settlement record for (employee, period).
type PaymentRecord struct {
	CompanyID CompanyID      `json:"companyId" cbor:"0,keyasint"`
	Employee  common.Address `json:"employee"  cbor:"1,keyasint"`
	ProofHash HexBytes       `json:"proofHash" cbor:"2,keyasint"`
	Timestamp uint64         `json:"timestamp" cbor:"3,keyasint"`
	Period    uint32         `json:"period"    cbor:"4,keyasint"`
}

// PaymentEvent is published after a settlement commits, for off-chain
// reconciliation. The event log is append-only and served read-only.
type PaymentEvent struct {
	Seq       uint64         `json:"seq"       cbor:"0,keyasint"`
	CompanyID CompanyID      `json:"companyId" cbor:"1,keyasint"`
	Employee  common.Address `json:"employee"  cbor:"2,keyasint"`
	Amount    *BigInt        `json:"amount"    cbor:"3,keyasint"`
	Period    uint32         `json:"period"    cbor:"4,keyasint"`
	Timestamp uint64         `json:"timestamp" cbor:"5,keyasint"`
}
