package websocket

import (
	"encoding/json"

	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/rs/zerolog/log"
)

const publishBuffer = 256

type delivery struct {
	username string
	client   *Client // set for a reply to a single connection
	message  []byte
}

// Hub maintains the set of active clients and pushes each user's activity
// events to that user's connections only. All map access happens on the
// Run goroutine.
type Hub struct {
	// Connected clients grouped by username.
	subscriptions map[string]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	publish    chan delivery
	disconnect chan string
	done       chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*Client]bool),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		publish:       make(chan delivery, publishBuffer),
		disconnect:    make(chan string),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for h.step() {
	}
}

// step handles one input and reports whether the loop should continue.
func (h *Hub) step() bool {
	select {
	case client := <-h.Register:
		h.addSubscription(client)
		log.Info().Str("username", client.Username).Int("connections", len(h.subscriptions[client.Username])).Msg("Client connected")
	case client := <-h.Unregister:
		if h.removeSubscription(client) {
			close(client.Send)
			log.Info().Str("username", client.Username).Msg("Client disconnected")
		}
	case username := <-h.disconnect:
		for client := range h.subscriptions[username] {
			close(client.Send)
		}
		if n := len(h.subscriptions[username]); n > 0 {
			delete(h.subscriptions, username)
			log.Info().Str("username", username).Int("connections", n).Msg("Closed connections of signed out user")
		}
	case d := <-h.publish:
		if d.client != nil {
			if h.subscriptions[d.client.Username][d.client] {
				h.deliver(d.client, d.message)
			}
			return true
		}
		for client := range h.subscriptions[d.username] {
			h.deliver(client, d.message)
		}
	case <-h.done:
		for _, subs := range h.subscriptions {
			for client := range subs {
				close(client.Send)
			}
		}
		h.subscriptions = make(map[string]map[*Client]bool)
		return false
	}
	return true
}

// Stop terminates Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Join registers client unless the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters client. It is a no-op once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Disconnect closes every connection of username, e.g. after logout. It is a
// no-op once the hub has stopped.
func (h *Hub) Disconnect(username string) {
	select {
	case h.disconnect <- username:
	case <-h.done:
	}
}

// Publish queues event for delivery to username's connections. It never
// blocks; when the queue is full the event is only kept in the activity log.
func (h *Hub) Publish(username string, event models.Event) {
	message, err := json.Marshal(NewEventMessage(event))
	if err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to encode event for websocket")
		return
	}

	select {
	case h.publish <- delivery{username: username, message: message}:
	default:
		log.Warn().Str("username", username).Str("event_id", event.ID).Msg("Websocket publish queue full, dropping event")
	}
}

// Reply queues msg for a single client. Like Publish it never blocks.
func (h *Hub) Reply(client *Client, msg Message) {
	message, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to encode websocket reply")
		return
	}

	select {
	case h.publish <- delivery{username: client.Username, client: client, message: message}:
	default:
		log.Warn().Str("username", client.Username).Msg("Websocket publish queue full, dropping reply")
	}
}

// deliver must only be called from Run.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		// Slow consumer; drop it rather than block every publisher.
		h.removeSubscription(client)
		close(client.Send)
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.Username] == nil {
		h.subscriptions[client.Username] = make(map[*Client]bool)
	}
	h.subscriptions[client.Username][client] = true
}

func (h *Hub) removeSubscription(client *Client) bool {
	subs, ok := h.subscriptions[client.Username]
	if !ok || !subs[client] {
		return false
	}
	delete(subs, client)
	if len(subs) == 0 {
		delete(h.subscriptions, client.Username)
	}
	return true
}
