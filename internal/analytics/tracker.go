package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"bizprompt/internal/logging"
	"bizprompt/internal/store"

	"github.com/google/uuid"
)

// MaxQueueSize caps the persisted event queue. When the cap is
// exceeded the oldest entries are dropped first.
const MaxQueueSize = 100

// Config controls tracker behavior. It is an explicit record passed at
// construction; there is no module-level default merging.
type Config struct {
	// Enabled turns tracking on. When false, Track is a no-op.
	Enabled bool
	// Debug logs every tracked event to the analytics log category.
	Debug bool
	// Endpoint, when non-empty, receives each event as a JSON POST.
	// Delivery is best-effort: failures are logged and swallowed.
	Endpoint string
}

// Tracker enqueues events in the slot store and optionally forwards
// them to the configured endpoint.
type Tracker struct {
	cfg       Config
	queue     *store.List[Event]
	client    *http.Client
	sessionID string
	now       func() time.Time

	// mu serializes the load-append-save cycle in enqueue; the slot
	// store only guards individual reads and writes.
	mu sync.Mutex
}

// envelope is the payload shape for endpoint delivery: the event plus
// request metadata that is not part of the queued shape.
type envelope struct {
	Event
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
}

// New constructs a tracker. Each tracker gets a fresh session id that
// is stamped on forwarded envelopes.
func New(cfg Config, slots *store.Slots) *Tracker {
	return &Tracker{
		cfg:       cfg,
		queue:     store.NewList[Event](slots, store.SlotAnalytics),
		client:    &http.Client{Timeout: 5 * time.Second},
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// Track records one event: debug log, enqueue with cap, and endpoint
// forwarding when configured. It never returns an error; analytics
// must not break the catalog.
func (t *Tracker) Track(event Event) {
	if !t.cfg.Enabled {
		return
	}

	if t.cfg.Debug {
		logging.Analytics("Event %s: %+v", event.Type, event)
	}

	t.enqueue(event)

	if t.cfg.Endpoint != "" {
		t.send(event)
	}
}

// enqueue appends the event and keeps only the last MaxQueueSize
// entries, dropping the oldest first. Safe for concurrent callers.
func (t *Tracker) enqueue(event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events := t.queue.Load()
	events = append(events, event)
	if len(events) > MaxQueueSize {
		events = events[len(events)-MaxQueueSize:]
	}
	t.queue.Save(events)
}

// send posts the event envelope to the endpoint. Best effort.
func (t *Tracker) send(event Event) {
	payload, err := json.Marshal(envelope{
		Event:     event,
		Timestamp: t.now().UTC().Format(time.RFC3339),
		SessionID: t.sessionID,
	})
	if err != nil {
		logging.Get(logging.CategoryAnalytics).Error("Failed to encode event: %v", err)
		return
	}

	resp, err := t.client.Post(t.cfg.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		if t.cfg.Debug {
			logging.Get(logging.CategoryAnalytics).Warn("Failed to send event: %v", err)
		}
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		logging.Get(logging.CategoryAnalytics).Warn("Endpoint returned %s for %s", resp.Status, event.Type)
	}
}

// Queued returns the persisted events in enqueue order.
func (t *Tracker) Queued() []Event {
	return t.queue.Load()
}

// Summary aggregates the queue for the stats view.
type Summary struct {
	TotalEvents int
	PromptViews int
	Searches    int
	Exports     int
	Copies      int
}

// Summarize counts the queued events by type.
func (t *Tracker) Summarize() Summary {
	var s Summary
	for _, e := range t.queue.Load() {
		s.TotalEvents++
		switch e.Type {
		case EventPromptView:
			s.PromptViews++
		case EventSearch:
			s.Searches++
		case EventPromptExport:
			s.Exports++
		case EventPromptCopy:
			s.Copies++
		}
	}
	return s
}
