package flush

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anycommerce/storefront/internal/dispatch"
)

// fakeSender records delivered batches and can be told to fail
type fakeSender struct {
	batches [][]dispatch.Request
	fail    bool
}

func (f *fakeSender) SendBatch(batch any) ([]json.RawMessage, error) {
	if f.fail {
		return nil, errors.New("transport down")
	}
	reqs := batch.([]dispatch.Request)
	f.batches = append(f.batches, reqs)

	responses := make([]json.RawMessage, len(reqs))
	for i, req := range reqs {
		responses[i] = json.RawMessage(fmt.Sprintf(`{"_cmd": %q, "ok": true}`, req.Cmd))
	}
	return responses, nil
}

func queueWith(t *testing.T, tier dispatch.Tier, cmds ...string) *dispatch.Queue {
	t.Helper()
	q := dispatch.New("/jsonapi/")
	for _, cmd := range cmds {
		if err := q.Push(tier, []byte(fmt.Sprintf(`{"_cmd": %q}`, cmd))); err != nil {
			t.Fatalf("Push(%s, %s) failed: %v", tier, cmd, err)
		}
	}
	return q
}

// TestFlushDrainsMutableAndPassive tests one cycle delivering whole batches
func TestFlushDrainsMutableAndPassive(t *testing.T) {
	q := dispatch.New("/jsonapi/")
	for _, cmd := range []string{"searchA", "searchB"} {
		if err := q.Push(dispatch.TierMutable, []byte(fmt.Sprintf(`{"_cmd": %q}`, cmd))); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	if err := q.Push(dispatch.TierPassive, []byte(`{"_cmd": "analyticsPing"}`)); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	sender := &fakeSender{}
	d := NewDriver(&Config{Queue: q, Sender: sender})

	if sent := d.Flush(); sent != 3 {
		t.Errorf("Flush() = %d, want 3", sent)
	}
	if len(sender.batches) != 2 {
		t.Fatalf("got %d batches, want 2 (mutable, passive)", len(sender.batches))
	}
	if len(sender.batches[0]) != 2 || sender.batches[0][0].Cmd != "searchA" {
		t.Errorf("mutable batch = %+v, want [searchA searchB]", sender.batches[0])
	}
	if len(sender.batches[1]) != 1 || sender.batches[1][0].Cmd != "analyticsPing" {
		t.Errorf("passive batch = %+v, want [analyticsPing]", sender.batches[1])
	}

	if q.HasPending() {
		t.Error("queue still pending after flush")
	}

	// An empty queue flushes nothing
	if sent := d.Flush(); sent != 0 {
		t.Errorf("Flush() on empty queue = %d, want 0", sent)
	}
}

// TestFlushImmutableSerial tests one-at-a-time delivery with ack between
func TestFlushImmutableSerial(t *testing.T) {
	q := queueWith(t, dispatch.TierImmutable, "cartItemAppend", "checkoutNow")
	sender := &fakeSender{}
	d := NewDriver(&Config{Queue: q, Sender: sender})

	if sent := d.Flush(); sent != 1 {
		t.Errorf("first Flush() = %d, want 1", sent)
	}
	if sent := d.Flush(); sent != 1 {
		t.Errorf("second Flush() = %d, want 1", sent)
	}
	if sent := d.Flush(); sent != 0 {
		t.Errorf("third Flush() = %d, want 0", sent)
	}

	if len(sender.batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(sender.batches))
	}
	for i, want := range []string{"cartItemAppend", "checkoutNow"} {
		if len(sender.batches[i]) != 1 || sender.batches[i][0].Cmd != want {
			t.Errorf("immutable batch %d = %+v, want [%s]", i, sender.batches[i], want)
		}
	}
	if q.ImmutableInFlight() {
		t.Error("immutable still marked in flight after delivery ack")
	}
}

// TestFlushFailureAcksImmutable tests that a failed send cannot wedge the tier
func TestFlushFailureAcksImmutable(t *testing.T) {
	q := queueWith(t, dispatch.TierImmutable, "checkoutNow", "cartItemAppend")
	sender := &fakeSender{fail: true}
	d := NewDriver(&Config{Queue: q, Sender: sender})

	if sent := d.Flush(); sent != 0 {
		t.Errorf("Flush() with dead transport = %d, want 0", sent)
	}
	if q.ImmutableInFlight() {
		t.Error("failed delivery left the immutable tier in flight")
	}

	// Transport recovers; the next request still goes out
	sender.fail = false
	if sent := d.Flush(); sent != 1 {
		t.Errorf("Flush() after recovery = %d, want 1", sent)
	}
	if sender.batches[0][0].Cmd != "cartItemAppend" {
		t.Errorf("delivered %q, want cartItemAppend", sender.batches[0][0].Cmd)
	}
}

// TestOnResponse tests the response hook receives batch and responses
func TestOnResponse(t *testing.T) {
	q := queueWith(t, dispatch.TierMutable, "appProductGet")
	sender := &fakeSender{}

	var gotTier dispatch.Tier
	var gotBatch []dispatch.Request
	var gotResponses []json.RawMessage
	d := NewDriver(&Config{
		Queue:  q,
		Sender: sender,
		OnResponse: func(tier dispatch.Tier, batch []dispatch.Request, responses []json.RawMessage) {
			gotTier = tier
			gotBatch = batch
			gotResponses = responses
		},
	})

	d.Flush()

	if gotTier != dispatch.TierMutable {
		t.Errorf("OnResponse tier = %v, want mutable", gotTier)
	}
	if len(gotBatch) != 1 || gotBatch[0].Cmd != "appProductGet" {
		t.Errorf("OnResponse batch = %+v, want [appProductGet]", gotBatch)
	}
	if len(gotResponses) != 1 || !strings.Contains(string(gotResponses[0]), "appProductGet") {
		t.Errorf("OnResponse responses = %v, want echo of appProductGet", gotResponses)
	}
}

// TestStartStopDrains tests that Stop performs a final drain
func TestStartStopDrains(t *testing.T) {
	q := queueWith(t, dispatch.TierImmutable, "a", "b", "c")
	sender := &fakeSender{}

	// Long interval so the drain on Stop, not the ticker, does the work
	d := NewDriver(&Config{Queue: q, Sender: sender, Interval: time.Hour})
	d.Start()
	d.Stop()

	if q.HasPending() {
		t.Error("queue still pending after Stop")
	}
	if len(sender.batches) != 3 {
		t.Errorf("got %d batches, want 3 one-request immutable batches", len(sender.batches))
	}
}

// TestStopAbandonsOnDeadTransport tests that Stop cannot spin forever
func TestStopAbandonsOnDeadTransport(t *testing.T) {
	q := queueWith(t, dispatch.TierPassive, "analyticsPing")
	sender := &fakeSender{fail: true}

	d := NewDriver(&Config{Queue: q, Sender: sender, Interval: time.Hour})
	d.Start()

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return with a dead transport")
	}
}

// TestClientSendBatch tests the resty client against a live test server
func TestClientSendBatch(t *testing.T) {
	var gotPath string
	var gotBody []map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"_cmd": "appProductGet", "ok": true}]`)
	}))
	defer server.Close()

	apiAddr := strings.TrimPrefix(server.URL, "http://")
	client := NewClient(apiAddr, "/jsonapi/", 5*time.Second)

	req, err := dispatch.ParseRequest([]byte(`{"_cmd": "appProductGet", "pid": "TEST"}`))
	if err != nil {
		t.Fatalf("ParseRequest failed: %v", err)
	}

	responses, err := client.SendBatch([]dispatch.Request{req})
	if err != nil {
		t.Fatalf("SendBatch failed: %v", err)
	}

	if gotPath != "/jsonapi/" {
		t.Errorf("batch POSTed to %q, want /jsonapi/", gotPath)
	}
	if len(gotBody) != 1 {
		t.Fatalf("server received %d requests, want 1", len(gotBody))
	}
	if _, ok := gotBody[0]["_cmd"]; !ok {
		t.Errorf("wire request missing _cmd: %v", gotBody[0])
	}
	if len(responses) != 1 {
		t.Errorf("got %d responses, want 1", len(responses))
	}
}

// TestClientErrorStatus tests that non-2xx responses surface as errors
func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad batch", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(strings.TrimPrefix(server.URL, "http://"), "/jsonapi/", 5*time.Second)
	if _, err := client.SendBatch([]dispatch.Request{}); err == nil {
		t.Error("SendBatch against erroring server succeeded, want error")
	}
}
