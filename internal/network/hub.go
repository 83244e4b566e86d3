// Package network streams simulation events to spectators over
// WebSocket. The feed is read-only: mutations enter the engine through
// the HTTP command endpoints, never through this hub.
package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
)

// replayDepth is how many recent events a newly connected spectator
// receives to catch up.
const replayDepth = 64

// Hub maintains the set of active spectators and broadcasts events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	eventLog   *events.EventLog
	sendBuffer int
}

// NewHub initializes a new WebSocket Hub over the given event log.
// broadcastBuffer sizes the shared fan-out channel, sendBuffer the
// per-spectator queue.
func NewHub(log *logger.Logger, eventLog *events.EventLog, broadcastBuffer, sendBuffer int) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		eventLog:   eventLog,
		sendBuffer: sendBuffer,
	}
}

// Run starts the Hub's main loop to handle spectators and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("New spectator connected")
			h.replayRecent(client)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("Spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// replayRecent sends the tail of the event history to a fresh spectator
// so it can render state without waiting for the next tick.
func (h *Hub) replayRecent(client *Client) {
	history := h.eventLog.Replay()
	start := 0
	if len(history) > replayDepth {
		start = len(history) - replayDepth
	}
	for _, event := range history[start:] {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		select {
		case client.send <- payload:
		default:
			return
		}
	}
}

// BroadcastEvent serializes a GameEvent and sends it to all spectators.
func (h *Hub) BroadcastEvent(event events.GameEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to serialize GameEvent for WebSocket broadcast: " + err.Error())
		return
	}
	h.broadcast <- payload
}

// StartEventPoller spawns a goroutine that polls the EventLog and pushes
// new events to the Hub. The Hub runs independently from the tick loop
// while picking up the same events.
func (h *Hub) StartEventPoller(ctx context.Context) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessedEvent := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				allEvents := h.eventLog.Replay()
				if len(allEvents) > lastProcessedEvent {
					for _, event := range allEvents[lastProcessedEvent:] {
						h.BroadcastEvent(event)
					}
					lastProcessedEvent = len(allEvents)
				}
			}
		}
	}()
}
