// Package api exposes the settlement protocol over HTTP. Handlers are
// thin: they decode, delegate to the components and map sentinel errors
// to stable numeric codes.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/zkpayroll/zk-payroll-contracts/audit"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/token"
	"github.com/zkpayroll/zk-payroll-contracts/verifier"
	"go.vocdoni.io/dvote/log"
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	Host     string
	Port     int
	Storage  *storage.Storage
	Registry *registry.Registry
	Store    *commitments.Store
	Verifier *verifier.Verifier
	Executor *executor.Executor
	Audit    *audit.Module
	Ledger   *token.Ledger
}

// API type represents the API HTTP server.
type API struct {
	router   *chi.Mux
	storage  *storage.Storage
	registry *registry.Registry
	store    *commitments.Store
	verifier *verifier.Verifier
	executor *executor.Executor
	audit    *audit.Module
	ledger   *token.Ledger
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Storage == nil {
		return nil, fmt.Errorf("missing storage instance")
	}
	a := &API{
		storage:  conf.Storage,
		registry: conf.Registry,
		store:    conf.Store,
		verifier: conf.Verifier,
		executor: conf.Executor,
		audit:    conf.Audit,
		ledger:   conf.Ledger,
	}
	a.initRouter()
	go func() {
		log.Infow("starting API server", "host", conf.Host, "port", conf.Port)
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", conf.Host, conf.Port), a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})

	a.router.Post(CompaniesEndpoint, a.registerCompany)
	a.router.Get(CompanyEndpoint, a.company)
	a.router.Get(CompanyTotalPaidEndpoint, a.companyTotalPaid)
	a.router.Post(CompanyEmployeesEndpoint, a.addEmployee)
	a.router.Put(CompanyEmployeeEndpoint, a.updateCommitment)
	a.router.Delete(CompanyEmployeeEndpoint, a.removeEmployee)
	a.router.Get(EmployeeCommitmentEndpoint, a.employeeCommitment)
	a.router.Post(BlindingEndpoint, a.newBlinding)

	a.router.Post(VerifierKeyEndpoint, a.installVerificationKey)
	a.router.Get(VerifierKeyEndpoint, a.verificationKey)

	a.router.Post(PayrollEndpoint, a.executePayroll)
	a.router.Get(PaymentEndpoint, a.payment)
	a.router.Get(EventsEndpoint, a.events)

	a.router.Post(ViewKeysEndpoint, a.grantViewKey)
	a.router.Get(ViewKeyEndpoint, a.viewKey)
	a.router.Delete(ViewKeyEndpoint, a.revokeViewKey)
	a.router.Post(AuditVerifyEndpoint, a.auditVerify)
	a.router.Post(AuditReportEndpoint, a.auditReport)

	a.router.Post(TokenMintEndpoint, a.mint)
	a.router.Get(TokenBalanceEndpoint, a.balance)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	a.registerHandlers()
}
