package notify

// Event names published by the services.
const (
	EventIdeaCreated = "idea:created"
	EventIdeaUpdated = "idea:updated"
)

// Event is the wire shape sent to connected websocket clients.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Broadcaster fans state-change events out to connected clients. There is no
// delivery guarantee, no ordering guarantee across subscribers and no replay
// of missed events; a client that connects late must re-fetch state over HTTP.
// Callers treat Publish as best effort and must not fail an operation on a
// publish error.
type Broadcaster interface {
	Publish(event string, payload interface{}) error
}
