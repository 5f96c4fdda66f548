package storage

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// Payment retrieves the settlement record for (employee, period).
func (s *Storage) Payment(employee common.Address, period uint32) (*types.PaymentRecord, error) {
	p := &types.PaymentRecord{}
	if err := s.getArtifact(paymentPrefix, paymentKey(employee, period), p); err != nil {
		return nil, err
	}
	return p, nil
}

// HasPayment reports whether a payment exists for (employee, period).
func (s *Storage) HasPayment(employee common.Address, period uint32) (bool, error) {
	return s.hasArtifact(paymentPrefix, paymentKey(employee, period))
}

// HasPaymentTx reports payment presence through an open transaction.
func HasPaymentTx(rd db.Reader, employee common.Address, period uint32) (bool, error) {
	return hasArtifactIn(rd, paymentPrefix, paymentKey(employee, period))
}

// SetPaymentTx writes a payment record through an open transaction.
// Records are write-once; the caller checks presence first.
func SetPaymentTx(wTx db.WriteTx, p *types.PaymentRecord) error {
	return setArtifactIn(wTx, paymentPrefix, paymentKey(p.Employee, p.Period), p)
}

// TotalPaid returns the running total a company has settled, zero if the
// company has never paid.
func (s *Storage) TotalPaid(company types.CompanyID) (*big.Int, error) {
	data, err := prefixeddb.NewPrefixedReader(s.db, totalPaidPrefix).Get(companyKey(company))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}

// AddTotalPaidTx accumulates amount into the company running total, under
// the settlement transaction.
func AddTotalPaidTx(wTx db.WriteTx, company types.CompanyID, amount *big.Int) error {
	totals := prefixeddb.NewPrefixedWriteTx(wTx, totalPaidPrefix)
	current := big.NewInt(0)
	data, err := totals.Get(companyKey(company))
	switch {
	case err == nil:
		current.SetBytes(data)
	case errors.Is(err, db.ErrKeyNotFound):
	default:
		return err
	}
	current.Add(current, amount)
	return totals.Set(companyKey(company), current.Bytes())
}
