// Package sse streams analysis activity to dashboards over Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Event types.
const (
	EventKeywordAnalyzed  = "keyword.analyzed"
	EventOutlineGenerated = "outline.generated"
	EventStatsUpdated     = "stats.updated"
)

const (
	clientBuffer     = 64
	backlogSize      = 128
	defaultHeartbeat = 15 * time.Second
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Stats is the payload of stats.updated: how many activity events of each
// type were published since the broker started, and the current audience.
type Stats struct {
	Activity map[string]int `json:"activity"`
	Clients  int            `json:"clients"`
}

type frame struct {
	id  uint64
	raw []byte
}

// Broker fans events out to subscribed clients. Every frame carries a
// sequence id; the last backlogSize frames are kept so a reconnecting client
// can resume with Last-Event-ID.
type Broker struct {
	statsEvery time.Duration
	heartbeat  time.Duration

	mu        sync.Mutex
	clients   map[chan []byte]struct{}
	backlog   []frame
	seq       uint64
	tally     map[string]int
	lastStats time.Time
	closed    bool
}

// NewBroker creates a broker that emits stats.updated at most once per
// statsThrottle.
func NewBroker(statsThrottle time.Duration) *Broker {
	if statsThrottle <= 0 {
		statsThrottle = 2 * time.Second
	}
	return &Broker{
		statsEvery: statsThrottle,
		heartbeat:  defaultHeartbeat,
		clients:    make(map[chan []byte]struct{}),
		tally:      make(map[string]int),
	}
}

// Subscribe adds a new client and returns its channel. The channel is closed
// by Unsubscribe or Close.
func (b *Broker) Subscribe() chan []byte {
	return b.subscribe(0)
}

// subscribe registers a client and first queues every backlog frame newer
// than after.
func (b *Broker) subscribe(after uint64) chan []byte {
	ch := make(chan []byte, clientBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	if after > 0 {
		for _, f := range b.backlog {
			if f.id <= after {
				continue
			}
			select {
			case ch <- f.raw:
			default:
			}
		}
	}
	b.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client. Later publishes are dropped.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.clients {
		close(ch)
	}
	clear(b.clients)
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.emit(event)
	}
}

// PublishActivity sends an analysis event, counts it, and follows it with a
// stats.updated event unless one went out within the throttle window.
func (b *Broker) PublishActivity(eventType string, data map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.emit(Event{Type: eventType, Data: data})
	b.tally[eventType]++

	now := time.Now()
	if now.Sub(b.lastStats) < b.statsEvery {
		return
	}
	b.lastStats = now
	activity := make(map[string]int, len(b.tally))
	for k, v := range b.tally {
		activity[k] = v
	}
	b.emit(Event{Type: EventStatsUpdated, Data: Stats{Activity: activity, Clients: len(b.clients)}})
}

// emit encodes event as a frame, records it in the backlog and offers it to
// every client. Slow clients miss the frame. Callers hold b.mu.
func (b *Broker) emit(event Event) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return
	}
	b.seq++
	f := frame{
		id:  b.seq,
		raw: fmt.Appendf(nil, "id: %d\nevent: %s\ndata: %s\n\n", b.seq, event.Type, payload),
	}

	b.backlog = append(b.backlog, f)
	if over := len(b.backlog) - backlogSize; over > 0 {
		b.backlog = append(b.backlog[:0], b.backlog[over:]...)
	}

	for ch := range b.clients {
		select {
		case ch <- f.raw:
		default:
		}
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events). A numeric
// Last-Event-ID header replays the missed frames still in the backlog.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var after uint64
	if v := r.Header.Get("Last-Event-ID"); v != "" {
		after, _ = strconv.ParseUint(v, 10, 64)
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.subscribe(after)
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(b.heartbeat)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
