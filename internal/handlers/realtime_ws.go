package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

// realtimeHub fans events out to every open socket a user has. A user may
// hold several connections at once (multiple tabs); each is tracked as a
// subscriber and dropped on the first failed send.
type realtimeHub struct {
	mu   sync.RWMutex
	subs map[string][]*websocket.Conn
}

func newRealtimeHub() *realtimeHub {
	return &realtimeHub{subs: make(map[string][]*websocket.Conn)}
}

func (h *realtimeHub) add(userID string, c *websocket.Conn) {
	if h == nil || c == nil || strings.TrimSpace(userID) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.subs[userID] {
		if existing == c {
			return
		}
	}
	h.subs[userID] = append(h.subs[userID], c)
}

func (h *realtimeHub) remove(userID string, c *websocket.Conn) {
	if h == nil || c == nil || strings.TrimSpace(userID) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.subs[userID]
	for i, existing := range list {
		if existing == c {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(h.subs, userID)
		return
	}
	h.subs[userID] = list
}

func (h *realtimeHub) broadcast(userID string, msg []byte) {
	if h == nil || strings.TrimSpace(userID) == "" || len(msg) == 0 {
		return
	}

	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.subs[userID]...)
	h.mu.RUnlock()

	for _, c := range conns {
		if err := websocket.Message.Send(c, string(msg)); err != nil {
			_ = c.Close()
			h.remove(userID, c)
		}
	}
}

func (h *realtimeHub) count(userID string) int {
	if h == nil || strings.TrimSpace(userID) == "" {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

type realtimeEvent struct {
	Type string `json:"type"`

	UserID    string `json:"userId"`
	ContentID string `json:"contentId,omitempty"`
	Platform  string `json:"platform,omitempty"`

	Status string `json:"status,omitempty"`
	At     string `json:"at"`
}

// EventsWebSocket streams per-user realtime events (content.published,
// analytics.synced). Browsers cannot set an Authorization header on a WS
// upgrade, so the bearer token rides in the token query parameter.
//
// URL: /api/v1/events?token=...
func (h *Handler) EventsWebSocket(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	userID, err := h.tokens.Parse(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	// golang.org/x/net/websocket's default origin check can 403 when the
	// Origin header doesn't match Host; auth is the token above, so any
	// origin is accepted.
	wsServer := websocket.Server{
		Handshake: func(cfg *websocket.Config, req *http.Request) error {
			return nil
		},
		Handler: func(c *websocket.Conn) {
			log.Printf("[RealtimeWS] connect userId=%s remote=%s", userID, r.RemoteAddr)
			h.rt.add(userID, c)
			defer h.rt.remove(userID, c)
			defer log.Printf("[RealtimeWS] disconnect userId=%s remote=%s", userID, r.RemoteAddr)

			// Send a hello so clients can confirm the channel.
			hello := realtimeEvent{
				Type:   "hello",
				UserID: userID,
				At:     time.Now().UTC().Format(time.RFC3339),
			}
			if b, err := json.Marshal(hello); err == nil {
				_ = websocket.Message.Send(c, string(b))
			}

			// Read loop to keep the connection open and detect disconnects.
			for {
				var ignored string
				if err := websocket.Message.Receive(c, &ignored); err != nil {
					break
				}
			}
		},
	}

	wsServer.ServeHTTP(w, r)
}

func (h *Handler) emitEvent(userID string, ev realtimeEvent) {
	if h == nil || h.rt == nil || strings.TrimSpace(userID) == "" {
		return
	}
	ev.UserID = userID
	if strings.TrimSpace(ev.At) == "" {
		ev.At = time.Now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Realtime] marshal_failed userId=%s err=%v", userID, err)
		return
	}
	log.Printf("[Realtime] emit userId=%s type=%s contentId=%s status=%s subs=%d",
		userID, ev.Type, ev.ContentID, ev.Status, h.rt.count(userID))
	h.rt.broadcast(userID, b)
}
