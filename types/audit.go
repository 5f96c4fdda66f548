package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// AuditScope bounds what an auditor may examine, ordered broad to narrow.
type AuditScope uint32

const (
	// ScopeFullCompany allows unrestricted reads on all payroll data of
	// the company.
	ScopeFullCompany AuditScope = iota
	// ScopeTimeRange restricts reads to a specific time range.
	ScopeTimeRange
	// ScopeEmployeeList allows verifying individual commitments for a
	// named employee list.
	ScopeEmployeeList
	// ScopeAggregateOnly permits aggregate totals only, never
	// per-employee facts.
	ScopeAggregateOnly
)

func (s AuditScope) String() string {
	switch s {
	case ScopeFullCompany:
		return "full_company"
	case ScopeTimeRange:
		return "time_range"
	case ScopeEmployeeList:
		return "employee_list"
	case ScopeAggregateOnly:
		return "aggregate_only"
	}
	return fmt.Sprintf("unknown(%d)", uint32(s))
}

func (s AuditScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AuditScope) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "full_company":
		*s = ScopeFullCompany
	case "time_range":
		*s = ScopeTimeRange
	case "employee_list":
		*s = ScopeEmployeeList
	case "aggregate_only":
		*s = ScopeAggregateOnly
	default:
		return fmt.Errorf("unknown audit scope: %q", name)
	}
	return nil
}

// ViewKey is a time-bounded, scope-limited capability letting an auditor
// query restricted payroll facts without access to raw salary data.
//
// ID is derived deterministically from (company, auditor, nonce); Nonce is
// a per-(company, auditor) monotonic counter, so repeated issuance to the
// same auditor never collides. A key is valid strictly while
// now < ExpiresAt.
type ViewKey struct {
	ID        HexBytes       `json:"id"        cbor:"0,keyasint"`
	CompanyID CompanyID      `json:"companyId" cbor:"1,keyasint"`
	Auditor   common.Address `json:"auditor"   cbor:"2,keyasint"`
	GrantedBy common.Address `json:"grantedBy" cbor:"3,keyasint"`
	CreatedAt uint64         `json:"createdAt" cbor:"4,keyasint"`
	ExpiresAt uint64         `json:"expiresAt" cbor:"5,keyasint"`
	Scope     AuditScope     `json:"scope"     cbor:"6,keyasint"`
	Nonce     uint64         `json:"nonce"     cbor:"7,keyasint"`
}

// AuditReport is the aggregate snapshot returned to an auditor. Individual
// salaries are never included. Callers must check Verified: it is true only
// when the totals were sourced from the on-chain payment event log.
type AuditReport struct {
	CompanyID      CompanyID `json:"companyId"`
	TotalEmployees uint32    `json:"totalEmployees"`
	TotalPaid      *BigInt   `json:"totalPaid"`
	PaymentCount   uint32    `json:"paymentCount"`
	PeriodStart    uint64    `json:"periodStart"`
	PeriodEnd      uint64    `json:"periodEnd"`
	Verified       bool      `json:"verified"`
}
