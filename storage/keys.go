package storage

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkpayroll/zk-payroll-contracts/types"
)

func companyKey(id types.CompanyID) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func paymentKey(employee common.Address, period uint32) []byte {
	key := make([]byte, 0, 24)
	key = append(key, employee.Bytes()...)
	key = binary.BigEndian.AppendUint32(key, period)
	return key
}

func keyNonceKey(company types.CompanyID, auditor common.Address) []byte {
	key := make([]byte, 0, 28)
	key = binary.BigEndian.AppendUint64(key, uint64(company))
	key = append(key, auditor.Bytes()...)
	return key
}

func eventKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Counter names under the counter prefix.
var (
	companyCounterKey = []byte("company")
	eventCounterKey   = []byte("event")
)
