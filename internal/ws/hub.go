package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/snowglobe/internal/camera"
	diag "github.com/coreman2200/snowglobe/internal/diagnostics"
	"github.com/coreman2200/snowglobe/internal/render"
	"github.com/coreman2200/snowglobe/internal/scene"
)

const writeWait = 200 * time.Millisecond

// Hub is a render.Sink that streams every frame as JSON to /ws clients and
// diagnostics to /diag clients. Control clients send held keys and viewport
// size back.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	frameID   uint64
	startTime time.Time
	input     camera.Input

	SinkName string
	Stats    func() scene.Stats
	OnResize func(width, height int)
}

func NewHub() *Hub {
	return &Hub{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		startTime:   time.Now(),
		input:       camera.Input{},
		SinkName:    "ws",
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Write broadcasts f to all frame clients. Slow clients are dropped by the
// write deadline, never waited on.
func (h *Hub) Write(f *render.Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameID = f.FrameID
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
	for c := range h.diagClients {
		c.Close()
		delete(h.diagClients, c)
	}
	return nil
}

// Clients returns the number of connected frame and diag clients.
func (h *Hub) Clients() (frames, diags int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), len(h.diagClients)
}

// Input returns a copy of the keys currently held by control clients.
func (h *Hub) Input() camera.Input {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(camera.Input, len(h.input))
	for k, v := range h.input {
		if v {
			out[k] = true
		}
	}
	return out
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	h.attach(w, r, h.diagClients)
}

func (h *Hub) attach(w http.ResponseWriter, r *http.Request, set map[*websocket.Conn]bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	set[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(set, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

type control struct {
	Keys   map[string]bool `json:"keys"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
}

// HandleControlWS accepts {"keys": {"W": true}, "width": 800, "height": 600}.
// Keys replace the held set; a positive size resizes the viewport.
func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg control
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("bad control message")
			continue
		}
		h.applyControl(msg)
	}
}

func (h *Hub) applyControl(msg control) {
	if msg.Keys != nil {
		h.mu.Lock()
		h.input = camera.Input{}
		for k, v := range msg.Keys {
			h.input[k] = v
		}
		h.mu.Unlock()
	}
	if msg.Width > 0 && msg.Height > 0 && h.OnResize != nil {
		h.OnResize(msg.Width, msg.Height)
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"sink":     h.SinkName,
		"clients":  len(h.clients),
	}
	h.mu.RUnlock()
	if h.Stats != nil {
		resp["scene"] = h.Stats()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// PushDiag sends d to every diag client.
func (h *Hub) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.diagClients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
