package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/api"
	"github.com/zkpayroll/zk-payroll-contracts/audit"
	"github.com/zkpayroll/zk-payroll-contracts/commitments"
	"github.com/zkpayroll/zk-payroll-contracts/config"
	"github.com/zkpayroll/zk-payroll-contracts/crypto/pairing"
	"github.com/zkpayroll/zk-payroll-contracts/executor"
	"github.com/zkpayroll/zk-payroll-contracts/host"
	"github.com/zkpayroll/zk-payroll-contracts/nullifiers"
	"github.com/zkpayroll/zk-payroll-contracts/registry"
	"github.com/zkpayroll/zk-payroll-contracts/storage"
	"github.com/zkpayroll/zk-payroll-contracts/token"
	"github.com/zkpayroll/zk-payroll-contracts/verifier"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"
)

func main() {
	cfg := config.ParseFlags()
	log.Init(cfg.LogLevel, cfg.LogOutput, nil)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	database, err := metadb.New(cfg.DBType, filepath.Join(cfg.DataDir, cfg.DBType))
	if err != nil {
		log.Fatal(err)
	}
	stg := storage.New(database)
	defer stg.Close()

	// The daemon trusts its callers; principal authorization is expected
	// to happen at the deployment boundary (gateway or host signatures).
	auth := host.AllowAll{}
	clock := &host.SystemClock{}
	bus := host.NewBus()

	store := commitments.New(stg, clock)
	reg := registry.New(stg, store, auth, clock)
	vrf := verifier.New(stg, pairing.Groth16{})
	nulls := nullifiers.New(stg, clock)
	exec := executor.New(stg, vrf, nulls, auth, clock, bus)
	auditor := audit.New(stg, auth, clock)
	ledger := token.NewLedger(stg, auth, common.HexToAddress(cfg.LedgerAdmin))

	if _, err := api.New(&api.APIConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Storage:  stg,
		Registry: reg,
		Store:    store,
		Verifier: vrf,
		Executor: exec,
		Audit:    auditor,
		Ledger:   ledger,
	}); err != nil {
		log.Fatal(err)
	}

	log.Infow("payrolld started", "dataDir", cfg.DataDir, "port", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}
