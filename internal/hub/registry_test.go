package hub

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"collabboard/internal/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu         sync.Mutex
	frames     [][]byte
	closed     bool
	failWrites bool
}

func (fc *fakeConn) WriteMessage(messageType int, data []byte) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.failWrites {
		return assert.AnError
	}
	if messageType == 1 { // text frames only, ignore pings and close
		cp := make([]byte, len(data))
		copy(cp, data)
		fc.frames = append(fc.frames, cp)
	}
	return nil
}

func (fc *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (fc *fakeConn) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.closed = true
	return nil
}

func (fc *fakeConn) envelopes(t *testing.T) []Envelope {
	t.Helper()
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]Envelope, 0, len(fc.frames))
	for _, frame := range fc.frames {
		var env Envelope
		require.NoError(t, json.Unmarshal(frame, &env))
		out = append(out, env)
	}
	return out
}

func (fc *fakeConn) frameCount() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.frames)
}

func newTestClient(whiteboardID, userID uuid.UUID) (*Client, *fakeConn) {
	fc := &fakeConn{}
	client := NewClient(fc, whiteboardID, userID)
	go client.WritePump()
	return client, fc
}

// checkViews asserts the three registry views agree with each other.
func checkViews(t *testing.T, r *Registry) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	for client, ci := range r.info {
		clients, ok := r.whiteboards[ci.whiteboardID]
		require.True(t, ok, "whiteboard view missing for registered client")
		_, ok = clients[client]
		require.True(t, ok, "client missing from whiteboard view")
		boards, ok := r.userBoards[ci.userID]
		require.True(t, ok, "user view missing for registered client")
		require.Greater(t, boards[ci.whiteboardID], 0, "user view count not positive")
	}
	total := 0
	for _, clients := range r.whiteboards {
		require.NotEmpty(t, clients, "empty whiteboard entry not pruned")
		for client := range clients {
			_, ok := r.info[client]
			require.True(t, ok, "orphaned client in whiteboard view")
		}
		total += len(clients)
	}
	require.Equal(t, len(r.info), total, "view sizes diverged")
	for _, boards := range r.userBoards {
		require.NotEmpty(t, boards, "empty user entry not pruned")
	}
}

func TestRegisterAndUnregisterKeepViewsConsistent(t *testing.T) {
	r := NewRegistry()
	board := uuid.New()
	userA, userB := uuid.New(), uuid.New()

	a, _ := newTestClient(board, userA)
	b1, _ := newTestClient(board, userB)
	b2, _ := newTestClient(board, userB) // second tab

	r.Register(a)
	r.Register(b1)
	r.Register(b2)
	checkViews(t, r)

	assert.ElementsMatch(t, []uuid.UUID{userA, userB}, r.UsersOnWhiteboard(board))
	assert.Equal(t, []uuid.UUID{board}, r.WhiteboardsForUser(userB))

	r.Unregister(b1)
	checkViews(t, r)
	// userB still live through the second tab
	assert.ElementsMatch(t, []uuid.UUID{userA, userB}, r.UsersOnWhiteboard(board))

	r.Unregister(b2)
	r.Unregister(a)
	checkViews(t, r)
	assert.Empty(t, r.UsersOnWhiteboard(board))
	assert.Empty(t, r.WhiteboardsForUser(userB))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	board := uuid.New()
	a, fcA := newTestClient(board, uuid.New())
	b, _ := newTestClient(board, uuid.New())

	r.Register(a)
	r.Register(b)

	r.Unregister(b)
	require.Eventually(t, func() bool {
		for _, env := range fcA.envelopes(t) {
			if env.Type == enums.SOCKET_MESSAGE_USER_LEAVE {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	leaves := 0
	r.Unregister(b) // second call must not broadcast again
	time.Sleep(50 * time.Millisecond)
	for _, env := range fcA.envelopes(t) {
		if env.Type == enums.SOCKET_MESSAGE_USER_LEAVE {
			leaves++
		}
	}
	assert.Equal(t, 1, leaves)
	checkViews(t, r)
}

func TestBroadcastExcludesByUserID(t *testing.T) {
	r := NewRegistry()
	board := uuid.New()
	sender := uuid.New()
	other := uuid.New()

	senderTab1, fcSender1 := newTestClient(board, sender)
	senderTab2, fcSender2 := newTestClient(board, sender)
	otherConn, fcOther := newTestClient(board, other)

	r.Register(senderTab1)
	r.Register(senderTab2)
	r.Register(otherConn)

	before := fcOther.frameCount()

	env := &Envelope{Type: enums.SOCKET_MESSAGE_DRAW, UserID: sender.String()}
	r.Broadcast(board, env, sender)

	require.Eventually(t, func() bool { return fcOther.frameCount() > before }, time.Second, 10*time.Millisecond)

	envs := fcOther.envelopes(t)
	assert.Equal(t, enums.SOCKET_MESSAGE_DRAW, envs[len(envs)-1].Type)

	// neither of the sender's own tabs may see the echo
	time.Sleep(50 * time.Millisecond)
	for _, env := range fcSender1.envelopes(t) {
		assert.NotEqual(t, enums.SOCKET_MESSAGE_DRAW, env.Type)
	}
	for _, env := range fcSender2.envelopes(t) {
		assert.NotEqual(t, enums.SOCKET_MESSAGE_DRAW, env.Type)
	}
}

func TestJoinLeaveScenario(t *testing.T) {
	r := NewRegistry()
	board := uuid.New()
	userA, userB := uuid.New(), uuid.New()

	a, fcA := newTestClient(board, userA)
	r.Register(a)
	// first participant: nobody to notify
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fcA.frameCount())

	b, _ := newTestClient(board, userB)
	r.Register(b)

	require.Eventually(t, func() bool {
		for _, env := range fcA.envelopes(t) {
			if env.Type == enums.SOCKET_MESSAGE_USER_JOIN {
				var payload presencePayload
				require.NoError(t, json.Unmarshal(env.Data, &payload))
				return payload.UserID == userB.String()
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	r.Unregister(b)
	require.Eventually(t, func() bool {
		for _, env := range fcA.envelopes(t) {
			if env.Type == enums.SOCKET_MESSAGE_USER_LEAVE {
				var payload presencePayload
				require.NoError(t, json.Unmarshal(env.Data, &payload))
				return payload.UserID == userB.String()
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []uuid.UUID{userA}, r.UsersOnWhiteboard(board))
}

func TestBroadcastSurvivesFailedPeer(t *testing.T) {
	r := NewRegistry()
	board := uuid.New()

	healthy, fcHealthy := newTestClient(board, uuid.New())
	r.Register(healthy)

	// A client without a running pump fills its buffer and is treated
	// as failed once the buffer overflows.
	stuck := NewClient(&fakeConn{}, board, uuid.New())
	r.Register(stuck)

	env := &Envelope{Type: enums.SOCKET_MESSAGE_CURSOR}
	for i := 0; i < sendBufferSize+8; i++ {
		r.Broadcast(board, env, uuid.Nil)
	}

	// healthy peer keeps receiving, stuck peer is eventually dropped
	require.Eventually(t, func() bool { return fcHealthy.frameCount() >= sendBufferSize }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		_, ok := r.info[stuck]
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	checkViews(t, r)
}
