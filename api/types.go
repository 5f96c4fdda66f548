package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

// RegisterCompany is the request to register a new company.
type RegisterCompany struct {
	Admin    common.Address `json:"admin"`
	Treasury common.Address `json:"treasury"`
}

// AddEmployee is the request to enroll an employee with their initial
// salary commitment.
type AddEmployee struct {
	Address    common.Address `json:"address"`
	Commitment types.HexBytes `json:"commitment"`
}

// UpdateCommitment is the request to rotate an employee's salary
// commitment.
type UpdateCommitment struct {
	Commitment types.HexBytes `json:"commitment"`
}

// TotalPaid is the response carrying a company's running settled total.
type TotalPaid struct {
	CompanyID types.CompanyID `json:"companyId"`
	TotalPaid *types.BigInt   `json:"totalPaid"`
}

// Blinding is the response to a blinding factor request.
type Blinding struct {
	Blinding types.HexBytes `json:"blinding"`
}

// GrantViewKey is the request to grant an auditor a scoped view key.
type GrantViewKey struct {
	CompanyID types.CompanyID  `json:"companyId"`
	Auditor   common.Address   `json:"auditor"`
	Scope     types.AuditScope `json:"scope"`
	TTL       uint64           `json:"ttl"`
}

// RevokeViewKey is the request to revoke a view key before expiry.
type RevokeViewKey struct {
	Admin common.Address `json:"admin"`
}

// AuditVerify is the request to verify a commitment opening under a view
// key.
type AuditVerify struct {
	KeyID         types.HexBytes `json:"keyId"`
	Auditor       common.Address `json:"auditor"`
	Employee      common.Address `json:"employee"`
	ClaimedSalary uint64         `json:"claimedSalary"`
	Blinding      types.HexBytes `json:"blinding"`
}

// AuditVerifyResult is the response to a commitment opening verification.
type AuditVerifyResult struct {
	Valid bool `json:"valid"`
}

// AuditReportRequest is the request for an aggregate payment report.
type AuditReportRequest struct {
	KeyID       types.HexBytes `json:"keyId"`
	Auditor     common.Address `json:"auditor"`
	PeriodStart uint64         `json:"periodStart"`
	PeriodEnd   uint64         `json:"periodEnd"`
}

// Mint is the request to credit a token account.
type Mint struct {
	To     common.Address `json:"to"`
	Amount *types.BigInt  `json:"amount"`
}

// AccountBalance is the response carrying a token account balance.
type AccountBalance struct {
	Account common.Address `json:"account"`
	Balance *types.BigInt  `json:"balance"`
}
