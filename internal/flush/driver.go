package flush

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/anycommerce/storefront/internal/config"
	"github.com/anycommerce/storefront/internal/dispatch"
	"github.com/anycommerce/storefront/internal/logging"
)

// Sender delivers one extracted batch to the API. Satisfied by *Client;
// tests substitute their own transport.
type Sender interface {
	SendBatch(batch any) ([]json.RawMessage, error)
}

// Config holds construction parameters for a Driver.
type Config struct {
	Queue    *dispatch.Queue
	Sender   Sender
	Interval time.Duration // Flush cadence; DefaultFlushInterval when zero

	// OnResponse, when set, receives the per-request response documents
	// of every delivered batch along with the tier it came from.
	OnResponse func(tier dispatch.Tier, batch []dispatch.Request, responses []json.RawMessage)
}

// Driver runs the periodic flush loop against a dispatch queue. One
// driver serves one queue; Start launches the loop and Stop performs a
// final drain before returning.
type Driver struct {
	queue      *dispatch.Queue
	sender     Sender
	interval   time.Duration
	onResponse func(tier dispatch.Tier, batch []dispatch.Request, responses []json.RawMessage)

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDriver creates a flush driver for the given queue and transport.
func NewDriver(cfg *Config) *Driver {
	interval := cfg.Interval
	if interval <= 0 {
		interval = config.DefaultFlushInterval
	}

	return &Driver{
		queue:      cfg.Queue,
		sender:     cfg.Sender,
		interval:   interval,
		onResponse: cfg.OnResponse,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background flush loop.
func (d *Driver) Start() {
	d.wg.Add(1)
	go d.run()
	logging.Info("Flush driver started (interval %v)", d.interval)
}

// Stop shuts the loop down and drains what it can: one final pass over
// every tier, repeating while Immutable requests remain deliverable.
// Requests whose final send fails are logged and dropped; the queue holds
// no knowledge of transport outcomes to recover them with.
func (d *Driver) Stop() {
	close(d.stopCh)
	d.wg.Wait()
	logging.Info("Flush driver stopped")
}

// run is the driver loop: flush on every tick until stopped, then hand
// off to the final drain.
func (d *Driver) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			d.drain()
			return
		case <-ticker.C:
			d.Flush()
		}
	}
}

// Flush performs one flush cycle: skip entirely when nothing is pending,
// otherwise extract and deliver one batch per tier in flush order.
// Returns the number of requests handed to the transport.
func (d *Driver) Flush() int {
	if !d.queue.HasPending() {
		return 0
	}

	sent := 0
	for _, tier := range dispatch.Tiers() {
		sent += d.flushTier(tier)
	}
	return sent
}

// flushTier extracts and delivers the tier's current batch. The Immutable
// tier's outcome is acknowledged whether or not delivery succeeded:
// the guarantee is serial execution, not delivery confirmation, and a
// failed send must not wedge the tier forever.
func (d *Driver) flushTier(tier dispatch.Tier) int {
	batch, err := d.queue.GetBatch(tier)
	if err != nil {
		logging.Error("Extracting %s batch: %v", tier, err)
		return 0
	}
	if len(batch) == 0 {
		return 0
	}

	responses, err := d.sender.SendBatch(batch)
	if tier == dispatch.TierImmutable {
		d.queue.AckImmutable()
	}
	if err != nil {
		logging.Error("Delivering %s batch of %d: %v", tier, len(batch), err)
		return 0
	}

	logging.Debug("Delivered %s batch of %d request(s)", tier, len(batch))
	if d.onResponse != nil {
		d.onResponse(tier, batch, responses)
	}
	return len(batch)
}

// drain flushes until the queue is empty or a cycle makes no progress
// (every remaining request failed delivery), so Stop never spins forever
// against a dead transport.
func (d *Driver) drain() {
	for d.queue.HasPending() {
		if d.Flush() == 0 {
			logging.Warn("Final drain made no progress; abandoning remaining requests")
			return
		}
	}
}
