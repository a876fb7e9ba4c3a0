package sse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFramesEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	s, err := New(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	require.NoError(t, s.Comment("connected"))
	require.NoError(t, s.Send("order", json.RawMessage(`{"id":1}`)))
	require.NoError(t, s.Send("order", map[string]int{"id": 2}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		": connected\n\n"+
			"id: 1\nevent: order\ndata: {\"id\":1}\n\n"+
			"id: 2\nevent: order\ndata: {\"id\":2}\n\n",
		rec.Body.String())
}

type plainWriter struct{ http.ResponseWriter }

func TestNewRequiresFlusher(t *testing.T) {
	_, err := New(plainWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrUnsupported)
}
