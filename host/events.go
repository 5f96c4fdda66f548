package host

import (
	"sync"

	"github.com/zkpayroll/zk-payroll-contracts/types"
	"go.vocdoni.io/dvote/log"
)

// Publisher delivers payment-processed events to in-process subscribers.
// Durable event storage is handled by the storage package inside the
// settlement transaction; the bus only fans out after commit.
type Publisher interface {
	Publish(ev *types.PaymentEvent)
}

// Bus is an in-memory fan-out publisher. Slow subscribers drop events
// rather than block settlement; the durable log remains complete.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan *types.PaymentEvent
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan *types.PaymentEvent)}
}

// Subscribe returns a channel of future events and a cancel function.
func (b *Bus) Subscribe() (<-chan *types.PaymentEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan *types.PaymentEvent, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(ev *types.PaymentEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			log.Warnw("event subscriber lagging, dropping event",
				"seq", ev.Seq, "company", uint64(ev.CompanyID))
		}
	}
}

// NopPublisher discards events. Used where no live subscribers exist.
type NopPublisher struct{}

func (NopPublisher) Publish(*types.PaymentEvent) {}
