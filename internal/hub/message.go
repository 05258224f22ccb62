package hub

import (
	"encoding/json"

	"collabboard/internal/enums"
)

// Envelope is the wire format every realtime message travels in.
// Timestamp is opaque: echoed back, never parsed. It is always present
// on outbound frames, empty when the server has nothing to echo.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// InboundMessage is a closed union over the message kinds a client may
// send. Decoding never fails on an unknown type tag; it yields
// UnknownMessage so the receive loop can log and move on.
type InboundMessage interface {
	isInbound()
}

type DrawMessage struct{ Envelope }
type EraseMessage struct{ Envelope }
type CursorMessage struct{ Envelope }
type PingMessage struct{ Envelope }
type DrawingEventMessage struct{ Envelope }
type UnknownMessage struct{ Envelope }

func (DrawMessage) isInbound()         {}
func (EraseMessage) isInbound()        {}
func (CursorMessage) isInbound()       {}
func (PingMessage) isInbound()         {}
func (DrawingEventMessage) isInbound() {}
func (UnknownMessage) isInbound()      {}

// ParseInbound decodes a raw frame into its typed variant. Only a
// non-parseable frame is an error; unrecognized type tags are not.
func ParseInbound(raw []byte) (InboundMessage, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case enums.SOCKET_MESSAGE_DRAW:
		return DrawMessage{env}, nil
	case enums.SOCKET_MESSAGE_ERASE:
		return EraseMessage{env}, nil
	case enums.SOCKET_MESSAGE_CURSOR:
		return CursorMessage{env}, nil
	case enums.SOCKET_MESSAGE_PING:
		return PingMessage{env}, nil
	case enums.SOCKET_MESSAGE_DRAWING_EVENT:
		return DrawingEventMessage{env}, nil
	default:
		return UnknownMessage{env}, nil
	}
}

// presencePayload is the data body of user_join / user_leave events.
type presencePayload struct {
	UserID string `json:"userId"`
}

func presenceEnvelope(eventType, userID string) *Envelope {
	data, _ := json.Marshal(presencePayload{UserID: userID})
	return &Envelope{
		Type:   eventType,
		Data:   data,
		UserID: userID,
	}
}
