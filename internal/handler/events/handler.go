package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/pkg/utils"
)

const (
	defaultHeartbeat = 15 * time.Second
	writeWait        = 10 * time.Second
)

// Handler 条目变更推送处理器，支持SSE与WebSocket
type Handler struct {
	hub       *events.Hub
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

// New 创建变更推送处理器
func New(hub *events.Hub) *Handler {
	return &Handler{
		hub:       hub,
		heartbeat: defaultHeartbeat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册变更推送路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleSSE)
	r.Get("/events/ws", h.handleWebSocket)
}

// handleSSE 以Server-Sent Events推送条目变更
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	feed, cancel := h.hub.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "status", map[string]string{"message": "stream established"})

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	log.Printf("[events] sse subscriber connected from %s", r.RemoteAddr)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[events] sse subscriber %s disconnected", r.RemoteAddr)
			return
		case ev, ok := <-feed:
			if !ok {
				return
			}
			utils.SendSSEEvent(w, flusher, string(ev.Type), ev)
		case t := <-ticker.C:
			utils.SendSSEEvent(w, flusher, "heartbeat", map[string]string{
				"time": t.UTC().Format(time.RFC3339),
			})
		}
	}
}

// handleWebSocket 以WebSocket推送条目变更
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	feed, cancel := h.hub.Subscribe()
	defer cancel()

	// The feed is one-way; reading only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	log.Printf("[events] websocket subscriber connected from %s", r.RemoteAddr)
	for {
		select {
		case <-closed:
			log.Printf("[events] websocket subscriber %s disconnected", r.RemoteAddr)
			return
		case <-r.Context().Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
				log.Printf("[events] websocket close failed: %v", err)
			}
			return
		case ev, ok := <-feed:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("[events] websocket set deadline failed: %v", err)
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[events] websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Printf("[events] websocket ping failed: %v", err)
				return
			}
		}
	}
}
