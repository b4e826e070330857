package pricing

import (
	"sync"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
)

// DefaultDebounceDelay throttles live form validation.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer re-runs Validate a fixed interval after the last submitted
// input and hands the result to the callback. It changes nothing about the
// rule set, only when the rules run.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	callback func(Result)
	stopped  bool
}

func NewDebouncer(delay time.Duration, callback func(Result)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay, callback: callback}
}

// Submit schedules validation of the given input, replacing any input
// submitted within the debounce window.
func (d *Debouncer) Submit(originalPrice, salePrice decimal.Decimal, category models.ProductCategory) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		result := Validate(originalPrice, salePrice, category)
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.callback(result)
		}
	})
}

// Stop cancels any pending validation. The debouncer cannot be reused.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
