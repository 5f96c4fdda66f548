// Package storage owns every persistent artifact of the settlement
// protocol on top of a prefixed key-value store. The following prefixes
// are used:
//   - 'co/' for companies
//   - 'em/' for employee bindings
//   - 'sc/' for salary commitments
//   - 'nu/' for consumed nullifiers
//   - 'py/' for payment records
//   - 'tp/' for per-company running totals
//   - 'vk/' for audit view keys
//   - 'kn/' for per-(company,auditor) view-key nonces
//   - 'pv/' for the proof verification key
//   - 'cn/' for sequence counters
//   - 'ev/' for the payment event log
//   - 'tb/' for token ledger balances
//
// Mutating entry points open their own write transaction. Operations that
// must share a batch atomicity boundary (the payroll executor, batch
// commitment updates) use the Tx method variants against a single WriteTx
// and rely on Discard for rollback.
package storage

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

var (
	companyPrefix    = []byte("co/")
	employeePrefix   = []byte("em/")
	commitmentPrefix = []byte("sc/")
	nullifierPrefix  = []byte("nu/")
	paymentPrefix    = []byte("py/")
	totalPaidPrefix  = []byte("tp/")
	viewKeyPrefix    = []byte("vk/")
	keyNoncePrefix   = []byte("kn/")
	verifierPrefix   = []byte("pv/")
	counterPrefix    = []byte("cn/")
	eventPrefix      = []byte("ev/")
	balancePrefix    = []byte("tb/")
)

// ErrNotFound is returned when an artifact does not exist.
var ErrNotFound = fmt.Errorf("not found")

// Storage wraps the host key-value database with typed accessors for the
// protocol artifacts.
type Storage struct {
	db db.Database
}

// New creates a new Storage instance over the given database.
func New(database db.Database) *Storage {
	return &Storage{db: database}
}

// Close closes the underlying database.
func (s *Storage) Close() {
	s.db.Close()
}

// WriteTx opens a write transaction spanning all artifact prefixes. The
// caller must Commit or Discard it; every mutation performed through the
// Tx variants below shares its atomicity boundary.
func (s *Storage) WriteTx() db.WriteTx {
	return s.db.WriteTx()
}

// Artifact encoding: deterministic CBOR, so equal artifacts always produce
// equal bytes.
func encodeArtifact(a any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return em.Marshal(a)
}

func decodeArtifact(data []byte, out any) error {
	return cbor.Unmarshal(data, out)
}

func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	return getArtifactFrom(s.db, prefix, key, out)
}

func getArtifactFrom(rd db.Reader, prefix, key []byte, out any) error {
	data, err := prefixeddb.NewPrefixedReader(rd, prefix).Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return decodeArtifact(data, out)
}

func (s *Storage) hasArtifact(prefix, key []byte) (bool, error) {
	return hasArtifactIn(s.db, prefix, key)
}

func hasArtifactIn(rd db.Reader, prefix, key []byte) (bool, error) {
	_, err := prefixeddb.NewPrefixedReader(rd, prefix).Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Storage) setArtifact(prefix, key []byte, a any) error {
	wTx := s.db.WriteTx()
	defer wTx.Discard()
	if err := setArtifactIn(wTx, prefix, key, a); err != nil {
		return err
	}
	return wTx.Commit()
}

func setArtifactIn(wTx db.WriteTx, prefix, key []byte, a any) error {
	data, err := encodeArtifact(a)
	if err != nil {
		return err
	}
	return prefixeddb.NewPrefixedWriteTx(wTx, prefix).Set(key, data)
}

func (s *Storage) deleteArtifact(prefix, key []byte) error {
	wTx := s.db.WriteTx()
	defer wTx.Discard()
	if err := deleteArtifactIn(wTx, prefix, key); err != nil {
		return err
	}
	return wTx.Commit()
}

func deleteArtifactIn(wTx db.WriteTx, prefix, key []byte) error {
	return prefixeddb.NewPrefixedWriteTx(wTx, prefix).Delete(key)
}

// iterateArtifacts walks all artifacts under a prefix, keys relative to
// the prefix. The callback returns false to stop early.
func (s *Storage) iterateArtifacts(prefix []byte, fn func(key, value []byte) bool) error {
	return s.db.Iterate(prefix, fn)
}
