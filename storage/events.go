package storage

import (
	"encoding/binary"

	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/db"
)

// AppendEventTx assigns the next event sequence number and writes the
// event to the durable log, inside the settlement transaction so the log
// never diverges from the payments it describes. The assigned sequence is
// stored back into ev.Seq.
func AppendEventTx(wTx db.WriteTx, ev *types.PaymentEvent) error {
	seq, err := nextCounterTx(wTx, eventCounterKey)
	if err != nil {
		return err
	}
	ev.Seq = seq
	return setArtifactIn(wTx, eventPrefix, eventKey(seq), ev)
}

// Events returns up to max events with sequence >= from, in order. A max
// of zero means no limit.
func (s *Storage) Events(from uint64, max int) ([]*types.PaymentEvent, error) {
	var events []*types.PaymentEvent
	err := s.iterateArtifacts(eventPrefix, func(key, value []byte) bool {
		if len(key) != 8 || binary.BigEndian.Uint64(key) < from {
			return true
		}
		ev := &types.PaymentEvent{}
		if err := decodeArtifact(value, ev); err != nil {
			return true
		}
		events = append(events, ev)
		return max == 0 || len(events) < max
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// EventsInRange returns the events of one company whose timestamp lies in
// [start, end], the audit module's source for aggregate totals.
func (s *Storage) EventsInRange(company types.CompanyID, start, end uint64) ([]*types.PaymentEvent, error) {
	var events []*types.PaymentEvent
	err := s.iterateArtifacts(eventPrefix, func(_, value []byte) bool {
		ev := &types.PaymentEvent{}
		if err := decodeArtifact(value, ev); err != nil {
			return true
		}
		if ev.CompanyID == company && ev.Timestamp >= start && ev.Timestamp <= end {
			events = append(events, ev)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
