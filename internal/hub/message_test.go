package hub

import (
	"encoding/json"
	"testing"

	"collabboard/internal/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceEnvelopeWireShape(t *testing.T) {
	for _, eventType := range []string{enums.SOCKET_MESSAGE_USER_JOIN, enums.SOCKET_MESSAGE_USER_LEAVE} {
		env := presenceEnvelope(eventType, "u1")
		raw, err := json.Marshal(env)
		require.NoError(t, err)

		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &fields))
		require.Contains(t, fields, "timestamp", "%s frame", eventType)
		assert.Equal(t, `""`, string(fields["timestamp"]), "%s frame", eventType)
		assert.Equal(t, `"u1"`, string(fields["userId"]), "%s frame", eventType)

		var payload presencePayload
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.Equal(t, "u1", payload.UserID)
	}
}
