package hub

import (
	"encoding/json"

	"collabboard/internal/enums"
	"collabboard/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ElementStore is what the router needs from the persistence side.
// The whiteboard service satisfies it; it enforces edit permission.
type ElementStore interface {
	CreateElement(whiteboardID, userID uuid.UUID, req *models.CreateElementRequestBody) (*models.DrawingElement, error)
	DeleteElement(whiteboardID, userID, elementID uuid.UUID) error
}

type drawPayload struct {
	Element models.CreateElementRequestBody `json:"element"`
}

type erasePayload struct {
	ElementID uuid.UUID `json:"elementId"`
}

// Router dispatches decoded inbound messages. Draw, erase, cursor and
// drawing_event fan out to the other participants of the whiteboard;
// ping answers the sender only. Persistence of draw/erase is
// best-effort and asynchronous: the broadcast never waits on it.
type Router struct {
	registry *Registry
	elements ElementStore
}

func NewRouter(registry *Registry, elements ElementStore) *Router {
	return &Router{
		registry: registry,
		elements: elements,
	}
}

// Handle processes one inbound message from the given client. It is
// called from the client's read loop, so messages from a single
// connection are broadcast in the order they arrived.
func (rt *Router) Handle(client *Client, msg InboundMessage) {
	switch m := msg.(type) {
	case DrawMessage:
		rt.registry.Broadcast(client.WhiteboardID(), &m.Envelope, client.UserID())
		rt.persistDraw(client, m.Envelope)
	case EraseMessage:
		rt.registry.Broadcast(client.WhiteboardID(), &m.Envelope, client.UserID())
		rt.persistErase(client, m.Envelope)
	case CursorMessage:
		// Ephemeral: relayed, never stored.
		rt.registry.Broadcast(client.WhiteboardID(), &m.Envelope, client.UserID())
	case DrawingEventMessage:
		rt.registry.Broadcast(client.WhiteboardID(), &m.Envelope, client.UserID())
	case PingMessage:
		rt.registry.SendTo(client, &Envelope{
			Type:      enums.SOCKET_MESSAGE_PONG,
			Timestamp: m.Timestamp,
		})
	case UnknownMessage:
		logrus.WithFields(logrus.Fields{
			"type":          m.Type,
			"user_id":       client.UserID(),
			"whiteboard_id": client.WhiteboardID(),
		}).Warn("Unknown message type")
	}
}

func (rt *Router) persistDraw(client *Client, env Envelope) {
	if rt.elements == nil {
		return
	}
	var payload drawPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logrus.WithError(err).Warn("Malformed draw payload, skipping persistence")
		return
	}
	whiteboardID, userID := client.WhiteboardID(), client.UserID()
	go func() {
		if _, err := rt.elements.CreateElement(whiteboardID, userID, &payload.Element); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":       userID,
				"whiteboard_id": whiteboardID,
			}).WithError(err).Warn("Failed to persist drawn element")
		}
	}()
}

func (rt *Router) persistErase(client *Client, env Envelope) {
	if rt.elements == nil {
		return
	}
	var payload erasePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		logrus.WithError(err).Warn("Malformed erase payload, skipping persistence")
		return
	}
	whiteboardID, userID := client.WhiteboardID(), client.UserID()
	go func() {
		if err := rt.elements.DeleteElement(whiteboardID, userID, payload.ElementID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":       userID,
				"whiteboard_id": whiteboardID,
			}).WithError(err).Warn("Failed to delete erased element")
		}
	}()
}
