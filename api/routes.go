package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"

	// CompaniesEndpoint is the endpoint for registering a company
	CompaniesEndpoint = "/companies"
	// CompanyEndpoint is the endpoint to get the company info
	CompanyURLParam = "companyId"
	CompanyEndpoint = "/companies/{" + CompanyURLParam + "}"
	// CompanyTotalPaidEndpoint exposes the running settled total
	CompanyTotalPaidEndpoint = "/companies/{" + CompanyURLParam + "}/totalpaid"
	// CompanyEmployeesEndpoint is the endpoint for enrolling employees
	CompanyEmployeesEndpoint = "/companies/{" + CompanyURLParam + "}/employees"
	// CompanyEmployeeEndpoint manages a single enrollment
	EmployeeURLParam        = "employee"
	CompanyEmployeeEndpoint = "/companies/{" + CompanyURLParam + "}/employees/{" + EmployeeURLParam + "}"

	// EmployeeCommitmentEndpoint exposes the active commitment record
	EmployeeCommitmentEndpoint = "/employees/{" + EmployeeURLParam + "}/commitment"

	// BlindingEndpoint generates a fresh blinding factor
	BlindingEndpoint = "/commitments/blinding"

	// VerifierKeyEndpoint installs and retrieves the verification key
	VerifierKeyEndpoint = "/verifier/key"

	// PayrollEndpoint settles a payroll batch
	PayrollEndpoint = "/payroll"
	// PaymentEndpoint retrieves a settlement record
	PeriodURLParam  = "period"
	PaymentEndpoint = "/payments/{" + EmployeeURLParam + "}/{" + PeriodURLParam + "}"
	// EventsEndpoint serves the durable payment event log
	EventsEndpoint = "/events"

	// ViewKeysEndpoint grants audit view keys
	ViewKeysEndpoint = "/viewkeys"
	// ViewKeyEndpoint retrieves or revokes a view key
	ViewKeyURLParam = "keyId"
	ViewKeyEndpoint = "/viewkeys/{" + ViewKeyURLParam + "}"
	// AuditVerifyEndpoint verifies a commitment opening under a view key
	AuditVerifyEndpoint = "/audit/verify"
	// AuditReportEndpoint builds an aggregate payment report
	AuditReportEndpoint = "/audit/report"

	// TokenMintEndpoint credits an account (ledger admin only)
	TokenMintEndpoint = "/token/mint"
	// TokenBalanceEndpoint reads an account balance
	AccountURLParam      = "account"
	TokenBalanceEndpoint = "/token/balances/{" + AccountURLParam + "}"
)
