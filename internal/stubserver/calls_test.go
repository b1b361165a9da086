package stubserver

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismslink/internal/domain"
)

func TestProcessEvent_SessionCallsHaveNoPluginField(t *testing.T) {
	s := New(Config{Logger: zerolog.Nop()})
	tick := domain.Event{"plugin": "echo", "method": "tick"}

	t.Run("absent plugin drains the queue", func(t *testing.T) {
		sess := &session{id: "s", pending: []domain.Event{tick}}
		var out reply
		s.processEvent(sess, call{method: "processEvent", data: map[string]any{"method": "getEvents"}}, &out)
		require.Len(t, out, 1)
		assert.Equal(t, tick, out[0])
		assert.Empty(t, sess.pending)
	})

	t.Run("empty plugin names an unknown plugin", func(t *testing.T) {
		sess := &session{id: "s", pending: []domain.Event{tick}}
		var out reply
		s.processEvent(sess, call{method: "processEvent", data: map[string]any{"plugin": "", "method": "getEvents"}}, &out)
		require.Len(t, out, 1)
		assert.Equal(t, "error", out[0]["method"])
		assert.Len(t, sess.pending, 1)
	})

	t.Run("addPlugin", func(t *testing.T) {
		sess := &session{id: "s"}
		var out reply
		s.processEvent(sess, call{method: "processEvent", data: map[string]any{"method": "addPlugin", "pluginToAdd": "users"}}, &out)
		assert.Empty(t, out)
		assert.Equal(t, []string{"users"}, sess.plugins)
	})
}
