package dispatch

import (
	"fmt"
	"sync"
)

// QueueFullError is returned when a tier has a configured capacity and the
// buffer is at that capacity. The push is rejected outright; the queue
// never evicts older requests to make room.
type QueueFullError struct {
	Tier     Tier // Tier whose buffer is full
	Capacity int  // Configured maximum for that tier
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("%s queue full: capacity %d", e.Tier, e.Capacity)
}

// Config holds construction parameters for a Queue. Capacities are
// per-tier maximums; zero means unbounded, which is the default and
// matches the behavior the client historically relied on.
type Config struct {
	Endpoint          string // Target JSON API endpoint, fixed for the queue lifetime
	MutableCapacity   int    // Max queued mutable requests (0 = unbounded)
	ImmutableCapacity int    // Max queued immutable requests (0 = unbounded)
	PassiveCapacity   int    // Max queued passive requests (0 = unbounded)
}

// Queue buffers outbound API requests in three independent FIFO tiers
// until a flush driver extracts them for delivery. All methods are safe
// for concurrent use: producers push from UI/business goroutines while
// the flush driver extracts from its own loop.
//
// Lifecycle: one Queue per client session, bound to a single endpoint.
// Buffers drain progressively through GetBatch and never expire on
// their own.
type Queue struct {
	mu sync.Mutex

	mutable   []Request
	immutable []Request
	passive   []Request

	endpoint string
	caps     map[Tier]int

	// immutableInFlight gates the Immutable tier to one outstanding
	// request: while set, GetBatch(TierImmutable) yields empty batches
	// until AckImmutable is called.
	immutableInFlight bool
}

// New creates a queue bound to the given endpoint with unbounded tiers.
// There is no failure mode; an empty endpoint simply produces a queue
// whose batches the caller cannot usefully deliver.
func New(endpoint string) *Queue {
	return NewWithConfig(&Config{Endpoint: endpoint})
}

// NewWithConfig creates a queue with explicit per-tier capacities.
func NewWithConfig(cfg *Config) *Queue {
	return &Queue{
		endpoint: cfg.Endpoint,
		caps: map[Tier]int{
			TierMutable:   cfg.MutableCapacity,
			TierImmutable: cfg.ImmutableCapacity,
			TierPassive:   cfg.PassiveCapacity,
		},
	}
}

// buffer returns the tier's backing slice. Callers must hold q.mu and
// must have validated the tier.
func (q *Queue) buffer(tier Tier) *[]Request {
	switch tier {
	case TierMutable:
		return &q.mutable
	case TierImmutable:
		return &q.immutable
	case TierPassive:
		return &q.passive
	}
	return nil
}

// Push decodes an inbound request payload and appends it to the tail of
// the named tier's buffer. The enqueue is all-or-nothing: an unknown tier
// or a payload that fails decoding leaves every buffer untouched, and a
// tier at its configured capacity rejects the push with *QueueFullError.
func (q *Queue) Push(tier Tier, payload []byte) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTier, int(tier))
	}

	req, err := ParseRequest(payload)
	if err != nil {
		return err
	}

	return q.PushRequest(tier, req)
}

// PushRequest appends an already-decoded request to the named tier. Used
// by callers that construct requests programmatically rather than from a
// raw JSON descriptor.
func (q *Queue) PushRequest(tier Tier, req Request) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTier, int(tier))
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	buf := q.buffer(tier)
	if max := q.caps[tier]; max > 0 && len(*buf) >= max {
		return &QueueFullError{Tier: tier, Capacity: max}
	}

	*buf = append(*buf, req)
	return nil
}

// Len returns the tier's current pending count. Pure read; an unknown
// tier reads as empty.
func (q *Queue) Len(tier Tier) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if buf := q.buffer(tier); buf != nil {
		return len(*buf)
	}
	return 0
}

// Abort clears the Mutable tier and returns the number of requests
// discarded. Immutable and Passive are a hard no-op returning 0: once a
// mission-critical or fire-and-forget request is accepted, it WILL be
// offered for delivery.
func (q *Queue) Abort(tier Tier) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if tier != TierMutable {
		return 0
	}

	cleared := len(q.mutable)
	q.mutable = nil
	return cleared
}

// GetBatch atomically removes and returns the tier's ready-to-send batch,
// oldest first. Logical ownership of the returned requests transfers to
// the caller; the queue drops its references immediately.
//
// Mutable and Passive drain their entire buffer. Immutable returns at
// most the single oldest request and then defers further extraction
// (empty batches) until AckImmutable reports the outcome, capping
// in-flight mission-critical work at one.
//
// Extraction is idempotent with respect to buffer state: back-to-back
// calls with nothing re-enqueued yield a full batch then an empty one.
func (q *Queue) GetBatch(tier Tier) ([]Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch tier {
	case TierMutable:
		batch := q.mutable
		q.mutable = nil
		return batch, nil

	case TierPassive:
		batch := q.passive
		q.passive = nil
		return batch, nil

	case TierImmutable:
		if q.immutableInFlight || len(q.immutable) == 0 {
			return nil, nil
		}
		req := q.immutable[0]
		q.immutable = q.immutable[1:]
		q.immutableInFlight = true
		return []Request{req}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(tier))
}

// AckImmutable reports that the outcome of the last extracted Immutable
// request has been resolved, successfully or not, allowing the next one
// to be offered. Safe to call when nothing is outstanding.
func (q *Queue) AckImmutable() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.immutableInFlight = false
}

// ImmutableInFlight reports whether an extracted Immutable request is
// still awaiting its AckImmutable.
func (q *Queue) ImmutableInFlight() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.immutableInFlight
}

// HasPending reports whether any tier holds queued requests. The flush
// driver uses this to decide whether a flush cycle is worth running.
// An in-flight Immutable request no longer counts as pending.
func (q *Queue) HasPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.mutable) > 0 || len(q.immutable) > 0 || len(q.passive) > 0
}

// Endpoint returns the JSON API endpoint the queue was bound to at
// construction.
func (q *Queue) Endpoint() string {
	return q.endpoint
}
