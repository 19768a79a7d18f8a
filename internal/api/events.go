package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ReloadEvent reports a grammar reload to /v1/events subscribers.
type ReloadEvent struct {
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

func newReloadEvent(err error) ReloadEvent {
	ev := ReloadEvent{OK: err == nil, At: time.Now().UTC()}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// Notifier broadcasts reload events to every subscribed listener.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan ReloadEvent]struct{}
}

// NewNotifier creates a Notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[chan ReloadEvent]struct{})}
}

// Subscribe returns a channel that receives events. The caller must call
// Unsubscribe when done.
func (n *Notifier) Subscribe() chan ReloadEvent {
	ch := make(chan ReloadEvent, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan ReloadEvent) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends ev to all listeners. A listener whose buffer is full
// misses the event.
func (n *Notifier) Broadcast(ev ReloadEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Count returns the number of listeners.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// handleEvents streams reload events as server-sent events until the
// client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	// Subscribe before announcing the connection so no event is missed.
	ch := s.events.Subscribe()
	defer s.events.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("failed to encode event", slog.Any("error", err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: reload\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleReload reloads the grammar and scripts and tells subscribers.
func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	err := s.engine.Reload()
	if err != nil {
		s.logger.Warn("reload failed; keeping the previous grammar", slog.Any("error", err))
	}
	s.onReload(err)

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, newReloadEvent(err))
}

// onReload tells subscribers the outcome of a reload. The engine has
// already logged it.
func (s *Server) onReload(err error) {
	s.logger.Debug("broadcasting reload", slog.Int("listeners", s.events.Count()), slog.Bool("ok", err == nil))
	s.events.Broadcast(newReloadEvent(err))
}
