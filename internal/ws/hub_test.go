package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/snowglobe/internal/diagnostics"
	"github.com/coreman2200/snowglobe/internal/render"
	"github.com/coreman2200/snowglobe/internal/scene"
)

func newServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/control", h.HandleControlWS)
	mux.HandleFunc("/health", h.HandleHealth)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHubBroadcastsFrames(t *testing.T) {
	h := NewHub()
	srv := newServer(t, h)
	a := dial(t, srv, "/ws")
	b := dial(t, srv, "/ws")
	require.Eventually(t, func() bool { n, _ := h.Clients(); return n == 2 }, time.Second, 5*time.Millisecond)

	f := &render.Frame{
		FrameID:  7,
		T:        1.5,
		Quadrics: []render.QuadricUniform{{ID: 3, Shininess: 10}},
		Lights:   []render.LightUniform{{Index: 0}},
	}
	require.NoError(t, h.Write(f))

	for _, c := range []*websocket.Conn{a, b} {
		c.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := c.ReadMessage()
		require.NoError(t, err)
		var got render.Frame
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, uint64(7), got.FrameID)
		require.Len(t, got.Quadrics, 1)
		assert.Equal(t, 3, got.Quadrics[0].ID)
		assert.Equal(t, float32(10), got.Quadrics[0].Shininess)
	}
}

func TestHubWriteWithoutClients(t *testing.T) {
	h := NewHub()
	assert.NoError(t, h.Write(&render.Frame{FrameID: 1}))
	assert.NoError(t, h.Close())
}

func TestHubPushDiag(t *testing.T) {
	h := NewHub()
	srv := newServer(t, h)
	c := dial(t, srv, "/diag")
	require.Eventually(t, func() bool { _, n := h.Clients(); return n == 1 }, time.Second, 5*time.Millisecond)

	h.PushDiag(diag.TickFailed(4, assert.AnError))

	c.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)
	var d diag.Diagnostic
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, "TICK.FAILED", d.Code)
	assert.Equal(t, diag.Err, d.Severity)
}

func TestHubControl(t *testing.T) {
	h := NewHub()
	var width, height atomic.Int64
	h.OnResize = func(w, hh int) {
		width.Store(int64(w))
		height.Store(int64(hh))
	}
	srv := newServer(t, h)
	c := dial(t, srv, "/control")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"keys":{"W":true,"A":false},"width":800,"height":600}`)))
	require.Eventually(t, func() bool { return h.Input()["W"] }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return width.Load() == 800 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(600), height.Load())
	assert.NotContains(t, h.Input(), "A")

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"keys":{}}`)))
	require.Eventually(t, func() bool { return len(h.Input()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubHealth(t *testing.T) {
	h := NewHub()
	h.Stats = func() scene.Stats { return scene.Stats{FrameID: 9, Slots: 15} }
	srv := newServer(t, h)
	require.NoError(t, h.Write(&render.Frame{FrameID: 9}))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		FrameID uint64      `json:"frame_id"`
		Sink    string      `json:"sink"`
		Scene   scene.Stats `json:"scene"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint64(9), body.FrameID)
	assert.Equal(t, "ws", body.Sink)
	assert.Equal(t, 15, body.Scene.Slots)
}

func TestHubCloseDropsClients(t *testing.T) {
	h := NewHub()
	srv := newServer(t, h)
	dial(t, srv, "/ws")
	dial(t, srv, "/diag")
	require.Eventually(t, func() bool { a, b := h.Clients(); return a == 1 && b == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Close())
	a, b := h.Clients()
	assert.Zero(t, a)
	assert.Zero(t, b)
}
