package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/cull"
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func TestCullStream(t *testing.T) {
	h, _ := newTestHandler(t)
	buildTestTree(t, h)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := dialStream(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	var msg StreamMessage
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(cullBody(t))))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, uint64(1), msg.Frame)
	assert.Empty(t, msg.Error)
	assert.Equal(t, []uint32{1}, msg.Visible)

	// errors are reported in band and the stream stays usable
	msg = StreamMessage{}
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{`)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, uint64(2), msg.Frame)
	assert.Contains(t, msg.Error, "invalid JSON")

	msg = StreamMessage{}
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"view_projection": [1]}`)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Contains(t, msg.Error, "view_projection")

	msg = StreamMessage{}
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(cullBody(t))))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, uint64(4), msg.Frame)
	assert.Equal(t, 1, msg.Count)
}

func TestCullStreamReadLimit(t *testing.T) {
	h, _ := newTestHandler(t)
	buildTestTree(t, h)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := dialStream(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	big := `{"view_projection": [` + strings.Repeat("0,", maxStreamMessage) + `0]}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)
}

func TestCullStreamOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.CORS.AllowedOrigins = []string{"http://viewer.local"}
	s := newServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(newRouter(s, cfg))
	defer srv.Close()

	conn, _, err := dialStream(t, srv, "http://viewer.local")
	require.NoError(t, err)
	conn.Close()

	_, resp, err := dialStream(t, srv, "http://elsewhere.local")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
