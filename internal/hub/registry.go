package hub

import (
	"encoding/json"
	"sync"

	"collabboard/internal/enums"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type connInfo struct {
	userID       uuid.UUID
	whiteboardID uuid.UUID
}

// Registry is the in-memory map between live connections and
// (user, whiteboard) pairs. It keeps three views that move together
// under one mutex:
//
//	whiteboards: whiteboard -> connected clients
//	userBoards:  user -> whiteboard -> connection count
//	info:        client -> (user, whiteboard)
//
// Nothing is persisted; a restart starts empty and reconnecting
// clients re-register. Construct one per server and inject it; there
// is no package-level instance.
type Registry struct {
	mu          sync.Mutex
	whiteboards map[uuid.UUID]map[*Client]struct{}
	userBoards  map[uuid.UUID]map[uuid.UUID]int
	info        map[*Client]connInfo
}

func NewRegistry() *Registry {
	return &Registry{
		whiteboards: make(map[uuid.UUID]map[*Client]struct{}),
		userBoards:  make(map[uuid.UUID]map[uuid.UUID]int),
		info:        make(map[*Client]connInfo),
	}
}

// Register adds the client to all three views and notifies the other
// participants of the whiteboard with a user_join event. The join
// event excludes every connection of the joining user, not just the
// new one.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	if _, ok := r.info[client]; ok {
		r.mu.Unlock()
		return
	}
	if _, ok := r.whiteboards[client.whiteboardID]; !ok {
		r.whiteboards[client.whiteboardID] = make(map[*Client]struct{})
	}
	r.whiteboards[client.whiteboardID][client] = struct{}{}

	if _, ok := r.userBoards[client.userID]; !ok {
		r.userBoards[client.userID] = make(map[uuid.UUID]int)
	}
	r.userBoards[client.userID][client.whiteboardID]++

	r.info[client] = connInfo{userID: client.userID, whiteboardID: client.whiteboardID}
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"user_id":       client.userID,
		"whiteboard_id": client.whiteboardID,
	}).Info("Client registered")

	r.Broadcast(
		client.whiteboardID,
		presenceEnvelope(enums.SOCKET_MESSAGE_USER_JOIN, client.userID.String()),
		client.userID,
	)
}

// Unregister removes the client from all three views, pruning empty
// entries, and notifies remaining participants with a user_leave
// event. Calling it again for the same client is a no-op: cleanup can
// be reached from both the read loop and the outer teardown.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	ci, ok := r.info[client]
	if !ok {
		r.mu.Unlock()
		client.shutdown()
		return
	}
	delete(r.info, client)

	if clients, ok := r.whiteboards[ci.whiteboardID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(r.whiteboards, ci.whiteboardID)
		}
	}
	if boards, ok := r.userBoards[ci.userID]; ok {
		boards[ci.whiteboardID]--
		if boards[ci.whiteboardID] <= 0 {
			delete(boards, ci.whiteboardID)
		}
		if len(boards) == 0 {
			delete(r.userBoards, ci.userID)
		}
	}
	r.mu.Unlock()

	client.shutdown()

	logrus.WithFields(logrus.Fields{
		"user_id":       ci.userID,
		"whiteboard_id": ci.whiteboardID,
	}).Info("Client unregistered")

	r.Broadcast(
		ci.whiteboardID,
		presenceEnvelope(enums.SOCKET_MESSAGE_USER_LEAVE, ci.userID.String()),
		ci.userID,
	)
}

// Broadcast serializes the envelope once and enqueues it to every
// connection on the whiteboard except those belonging to excludeUser
// (matched by user id: one user may hold several tabs). Pass uuid.Nil
// to exclude nobody. A connection whose buffer is full or closed is
// scheduled for unregistration; the rest of the fan-out continues.
func (r *Registry) Broadcast(whiteboardID uuid.UUID, envelope *Envelope, excludeUser uuid.UUID) {
	message, err := json.Marshal(envelope)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal broadcast envelope")
		return
	}

	r.mu.Lock()
	clients := r.whiteboards[whiteboardID]
	recipients := make([]*Client, 0, len(clients))
	for client := range clients {
		if excludeUser != uuid.Nil && client.userID == excludeUser {
			continue
		}
		recipients = append(recipients, client)
	}
	r.mu.Unlock()

	for _, client := range recipients {
		if !client.enqueue(message) {
			logrus.WithFields(logrus.Fields{
				"user_id":       client.userID,
				"whiteboard_id": whiteboardID,
			}).Warn("Client send buffer full or closed, scheduling unregister")
			go r.Unregister(client)
		}
	}
}

// SendTo enqueues an envelope to a single client, bypassing exclusion.
func (r *Registry) SendTo(client *Client, envelope *Envelope) {
	message, err := json.Marshal(envelope)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal envelope")
		return
	}
	if !client.enqueue(message) {
		go r.Unregister(client)
	}
}

// UsersOnWhiteboard returns the distinct user ids currently connected
// to the whiteboard.
func (r *Registry) UsersOnWhiteboard(whiteboardID uuid.UUID) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]struct{})
	users := make([]uuid.UUID, 0)
	for client := range r.whiteboards[whiteboardID] {
		if _, ok := seen[client.userID]; ok {
			continue
		}
		seen[client.userID] = struct{}{}
		users = append(users, client.userID)
	}
	return users
}

// WhiteboardsForUser returns the whiteboard ids the user is live on.
func (r *Registry) WhiteboardsForUser(userID uuid.UUID) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	boards := make([]uuid.UUID, 0, len(r.userBoards[userID]))
	for id := range r.userBoards[userID] {
		boards = append(boards, id)
	}
	return boards
}

// CloseAll shuts every connection down, used on server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.info))
	for client := range r.info {
		clients = append(clients, client)
	}
	r.mu.Unlock()
	for _, client := range clients {
		r.Unregister(client)
	}
}
