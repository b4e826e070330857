package realtime

import (
	"sync"

	"github.com/myliquor/myliquor-server/models"
	"github.com/sirupsen/logrus"
)

// subscriptionBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind starts losing events rather than blocking mutations.
const subscriptionBuffer = 64

// Filter narrows a subscription to matching rows, e.g. products of one sale.
type Filter func(models.ChangeEvent) bool

// SaleProductFilter matches product events belonging to the given sale.
func SaleProductFilter(saleID string) Filter {
	return func(ev models.ChangeEvent) bool {
		if p, ok := ev.New.(models.SaleProduct); ok {
			return p.SaleID == saleID
		}
		if p, ok := ev.Old.(models.SaleProduct); ok {
			return p.SaleID == saleID
		}
		return false
	}
}

type Subscription struct {
	C     <-chan models.ChangeEvent
	hub   *Hub
	sub   *subscriber
	once  sync.Once
	table string
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.sub)
	})
}

type subscriber struct {
	table  string
	filter Filter
	ch     chan models.ChangeEvent
}

// Hub fans row-change events out to per-table subscribers, preserving
// publish order per subscriber.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// DefaultHub carries all repository change events for the process.
var DefaultHub = NewHub()

// Subscribe registers for change events on one table. A nil filter receives
// every event of the table. Callers must Close the subscription when done.
func (h *Hub) Subscribe(table string, filter Filter) *Subscription {
	sub := &subscriber{
		table:  table,
		filter: filter,
		ch:     make(chan models.ChangeEvent, subscriptionBuffer),
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return &Subscription{C: sub.ch, hub: h, sub: sub, table: table}
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Publish delivers an event to all matching subscribers without blocking
// the caller. Full subscriber buffers drop the event.
func (h *Hub) Publish(ev models.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if sub.table != ev.Table {
			continue
		}
		if sub.filter != nil && !sub.filter(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			logrus.Warnf("realtime: dropping %s event for slow %s subscriber", ev.Type, ev.Table)
		}
	}
}

// Publish sends an event through the default hub.
func Publish(ev models.ChangeEvent) {
	DefaultHub.Publish(ev)
}
