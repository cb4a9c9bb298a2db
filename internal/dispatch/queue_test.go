package dispatch

import (
	"errors"
	"fmt"
	"testing"
)

// pushN pushes n generated requests onto the tier and fails the test on error
func pushN(t *testing.T, q *Queue, tier Tier, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		payload := fmt.Sprintf(`{"_cmd": "appProductGet", "pid": "TEST-%d"}`, i)
		if err := q.Push(tier, []byte(payload)); err != nil {
			t.Fatalf("Push(%s, #%d) failed: %v", tier, i, err)
		}
	}
}

// pids extracts the pid params of a batch for order assertions
func pids(t *testing.T, batch []Request) []string {
	t.Helper()
	out := make([]string, 0, len(batch))
	for _, req := range batch {
		var pid string
		if _, err := req.Param("pid", &pid); err != nil {
			t.Fatalf("reading pid param: %v", err)
		}
		out = append(out, pid)
	}
	return out
}

// TestPushAndLen tests that Len reflects successful pushes per tier
func TestPushAndLen(t *testing.T) {
	tests := []struct {
		name   string
		tier   Tier
		pushes int
	}{
		{name: "mutable", tier: TierMutable, pushes: 3},
		{name: "immutable", tier: TierImmutable, pushes: 2},
		{name: "passive", tier: TierPassive, pushes: 5},
		{name: "empty mutable", tier: TierMutable, pushes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New("/jsonapi/")
			pushN(t, q, tt.tier, tt.pushes)

			if got := q.Len(tt.tier); got != tt.pushes {
				t.Errorf("Len(%s) = %d, want %d", tt.tier, got, tt.pushes)
			}

			// Other tiers stay independent
			for _, other := range Tiers() {
				if other == tt.tier {
					continue
				}
				if got := q.Len(other); got != 0 {
					t.Errorf("Len(%s) = %d, want 0", other, got)
				}
			}
		})
	}
}

// TestGetBatchDrainAll tests FIFO drain-all semantics for Mutable and Passive
func TestGetBatchDrainAll(t *testing.T) {
	for _, tier := range []Tier{TierMutable, TierPassive} {
		t.Run(tier.String(), func(t *testing.T) {
			q := New("/jsonapi/")
			pushN(t, q, tier, 3)

			batch, err := q.GetBatch(tier)
			if err != nil {
				t.Fatalf("GetBatch(%s) failed: %v", tier, err)
			}

			want := []string{"TEST-0", "TEST-1", "TEST-2"}
			got := pids(t, batch)
			if len(got) != len(want) {
				t.Fatalf("GetBatch(%s) returned %d requests, want %d", tier, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("batch[%d] pid = %q, want %q (FIFO order)", i, got[i], want[i])
				}
			}

			if q.Len(tier) != 0 {
				t.Errorf("Len(%s) after drain = %d, want 0", tier, q.Len(tier))
			}

			// Idempotent drain: second extraction yields an empty batch
			again, err := q.GetBatch(tier)
			if err != nil {
				t.Fatalf("second GetBatch(%s) failed: %v", tier, err)
			}
			if len(again) != 0 {
				t.Errorf("second GetBatch(%s) returned %d requests, want 0", tier, len(again))
			}
		})
	}
}

// TestGetBatchImmutableSingleFlight tests the one-at-a-time contract and
// the in-flight gate on the Immutable tier
func TestGetBatchImmutableSingleFlight(t *testing.T) {
	q := New("/jsonapi/")
	pushN(t, q, TierImmutable, 2)

	first, err := q.GetBatch(TierImmutable)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first batch has %d requests, want exactly 1", len(first))
	}
	if got := pids(t, first); got[0] != "TEST-0" {
		t.Errorf("first extracted pid = %q, want TEST-0", got[0])
	}
	if q.Len(TierImmutable) != 1 {
		t.Errorf("Len after first extraction = %d, want 1", q.Len(TierImmutable))
	}

	// Extraction is deferred while the first request is outstanding
	blocked, err := q.GetBatch(TierImmutable)
	if err != nil {
		t.Fatalf("GetBatch while in flight failed: %v", err)
	}
	if len(blocked) != 0 {
		t.Errorf("GetBatch while in flight returned %d requests, want 0", len(blocked))
	}
	if !q.ImmutableInFlight() {
		t.Error("ImmutableInFlight() = false, want true after extraction")
	}

	q.AckImmutable()

	second, err := q.GetBatch(TierImmutable)
	if err != nil {
		t.Fatalf("GetBatch after ack failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("second batch has %d requests, want 1", len(second))
	}
	if got := pids(t, second); got[0] != "TEST-1" {
		t.Errorf("second extracted pid = %q, want TEST-1 (submission order)", got[0])
	}
	if q.Len(TierImmutable) != 0 {
		t.Errorf("Len after second extraction = %d, want 0", q.Len(TierImmutable))
	}
}

// TestAbort tests that only the Mutable tier can be cleared
func TestAbort(t *testing.T) {
	tests := []struct {
		name        string
		tier        Tier
		queued      int
		wantCleared int
		wantLeft    int
	}{
		{name: "mutable clears wholesale", tier: TierMutable, queued: 3, wantCleared: 3, wantLeft: 0},
		{name: "mutable empty", tier: TierMutable, queued: 0, wantCleared: 0, wantLeft: 0},
		{name: "immutable never clears", tier: TierImmutable, queued: 2, wantCleared: 0, wantLeft: 2},
		{name: "passive never clears", tier: TierPassive, queued: 4, wantCleared: 0, wantLeft: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New("/jsonapi/")
			pushN(t, q, tt.tier, tt.queued)

			if got := q.Abort(tt.tier); got != tt.wantCleared {
				t.Errorf("Abort(%s) = %d, want %d", tt.tier, got, tt.wantCleared)
			}
			if got := q.Len(tt.tier); got != tt.wantLeft {
				t.Errorf("Len(%s) after abort = %d, want %d", tt.tier, got, tt.wantLeft)
			}
		})
	}
}

// TestAbortThenGetBatch tests that aborted mutable work never reaches a batch
func TestAbortThenGetBatch(t *testing.T) {
	q := New("/jsonapi/")
	pushN(t, q, TierMutable, 1)

	if got := q.Abort(TierMutable); got != 1 {
		t.Fatalf("Abort(mutable) = %d, want 1", got)
	}

	batch, err := q.GetBatch(TierMutable)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("GetBatch after abort returned %d requests, want 0", len(batch))
	}
}

// TestHasPending tests the any-tier pending check
func TestHasPending(t *testing.T) {
	q := New("/jsonapi/")
	if q.HasPending() {
		t.Error("HasPending() = true on a fresh queue, want false")
	}

	for _, tier := range Tiers() {
		t.Run(tier.String(), func(t *testing.T) {
			q := New("/jsonapi/")
			pushN(t, q, tier, 1)
			if !q.HasPending() {
				t.Errorf("HasPending() = false with a %s request queued, want true", tier)
			}

			if _, err := q.GetBatch(tier); err != nil {
				t.Fatalf("GetBatch failed: %v", err)
			}
			if q.HasPending() {
				t.Error("HasPending() = true after draining, want false")
			}
		})
	}
}

// TestPushDecodeError tests that malformed payloads leave buffers untouched
func TestPushDecodeError(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing _cmd", payload: `{"pid": "TEST"}`},
		{name: "non-string _cmd", payload: `{"_cmd": 42}`},
		{name: "empty _cmd", payload: `{"_cmd": ""}`},
		{name: "not an object", payload: `["appProductGet"]`},
		{name: "truncated document", payload: `{"_cmd": "app`},
		{name: "malformed tag", payload: `{"_cmd": "x", "_tag": "not-an-object"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New("/jsonapi/")
			pushN(t, q, TierMutable, 2)
			before := q.Len(TierMutable)

			err := q.Push(TierMutable, []byte(tt.payload))
			if err == nil {
				t.Fatalf("Push(%q) succeeded, want decode error", tt.payload)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("Push error = %v, want *DecodeError", err)
			}
			if got := q.Len(TierMutable); got != before {
				t.Errorf("Len changed from %d to %d on failed push, want unchanged", before, got)
			}
		})
	}
}

// TestPushUnknownTier tests rejection of tiers outside the enumeration
func TestPushUnknownTier(t *testing.T) {
	q := New("/jsonapi/")
	bogus := Tier(17)

	if err := q.Push(bogus, []byte(`{"_cmd": "x"}`)); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("Push(unknown tier) error = %v, want ErrUnknownTier", err)
	}
	if _, err := q.GetBatch(bogus); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("GetBatch(unknown tier) error = %v, want ErrUnknownTier", err)
	}
	if got := q.Abort(bogus); got != 0 {
		t.Errorf("Abort(unknown tier) = %d, want 0", got)
	}
	if got := q.Len(bogus); got != 0 {
		t.Errorf("Len(unknown tier) = %d, want 0", got)
	}
	if q.HasPending() {
		t.Error("HasPending() = true after rejected pushes, want false")
	}
}

// TestQueueCapacity tests the reject-on-full capacity policy
func TestQueueCapacity(t *testing.T) {
	q := NewWithConfig(&Config{
		Endpoint:        "/jsonapi/",
		MutableCapacity: 2,
	})

	pushN(t, q, TierMutable, 2)

	err := q.Push(TierMutable, []byte(`{"_cmd": "overflow"}`))
	var fullErr *QueueFullError
	if !errors.As(err, &fullErr) {
		t.Fatalf("Push over capacity error = %v, want *QueueFullError", err)
	}
	if fullErr.Tier != TierMutable || fullErr.Capacity != 2 {
		t.Errorf("QueueFullError = %+v, want tier mutable capacity 2", fullErr)
	}
	if got := q.Len(TierMutable); got != 2 {
		t.Errorf("Len after rejected push = %d, want 2", got)
	}

	// Unbounded tiers are unaffected
	pushN(t, q, TierPassive, 10)
	if got := q.Len(TierPassive); got != 10 {
		t.Errorf("Len(passive) = %d, want 10", got)
	}

	// Draining frees capacity
	if _, err := q.GetBatch(TierMutable); err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if err := q.Push(TierMutable, []byte(`{"_cmd": "fits-again"}`)); err != nil {
		t.Errorf("Push after drain failed: %v", err)
	}
}

// TestEndpoint tests the read-only endpoint accessor
func TestEndpoint(t *testing.T) {
	q := New("/jsonapi/")
	if got := q.Endpoint(); got != "/jsonapi/" {
		t.Errorf("Endpoint() = %q, want %q", got, "/jsonapi/")
	}
}

// TestTierIndependence tests that the three buffers stay fully independent
func TestTierIndependence(t *testing.T) {
	q := New("/jsonapi/")
	pushN(t, q, TierMutable, 2)
	pushN(t, q, TierImmutable, 2)
	pushN(t, q, TierPassive, 2)

	// Aborting mutable leaves the other tiers alone
	if got := q.Abort(TierMutable); got != 2 {
		t.Fatalf("Abort(mutable) = %d, want 2", got)
	}
	if q.Len(TierImmutable) != 2 || q.Len(TierPassive) != 2 {
		t.Errorf("abort bled across tiers: immutable=%d passive=%d, want 2/2",
			q.Len(TierImmutable), q.Len(TierPassive))
	}

	// Draining passive leaves immutable alone
	if _, err := q.GetBatch(TierPassive); err != nil {
		t.Fatalf("GetBatch(passive) failed: %v", err)
	}
	if q.Len(TierImmutable) != 2 {
		t.Errorf("Len(immutable) = %d after passive drain, want 2", q.Len(TierImmutable))
	}
}
