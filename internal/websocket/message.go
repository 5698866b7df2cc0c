package websocket

import "github.com/isdelr/contact-book-be/internal/models"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewEventMessage wraps an activity event.
func NewEventMessage(event models.Event) Message {
	return Message{Action: "event", Payload: event}
}

// NewErrorMessage reports a problem with a client request.
func NewErrorMessage(message string) Message {
	return Message{Action: "error", Payload: map[string]string{"message": message}}
}

// NewPongMessage answers a client ping.
func NewPongMessage() Message {
	return Message{Action: "pong"}
}
