package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/sse"
	"github.com/gorilla/websocket"
)

const (
	keepaliveInterval = 30 * time.Second
	wsWriteTimeout    = 10 * time.Second
)

type RealtimeHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
	WebSocket(w http.ResponseWriter, r *http.Request)
}

type realtimeHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
	hub         *sse.Hub
	upgrader    websocket.Upgrader
}

func NewRealtimeHandler(jwtService jwt.Service, authService auth.AuthService, hub *sse.Hub, allowedOrigins []string) RealtimeHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &realtimeHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// wireEvent is the JSON shape of an event on the WebSocket.
type wireEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// topicsFor: admins follow the whole salon, barbers their own employee.
func topicsFor(claims jwt.StreamClaims) []string {
	var topics []string
	if claims.Role.IsAdmin() {
		topics = append(topics, sse.TopicAdmins)
	}
	if claims.EmployeeID != nil {
		topics = append(topics, sse.TopicEmployee(*claims.EmployeeID))
	}
	return topics
}

// authorize validates the ?token= stream token; EventSource and browsers' WebSocket cannot send headers.
func (h *realtimeHandlerImpl) authorize(r *http.Request) (jwt.StreamClaims, error) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		return jwt.StreamClaims{}, auth.ErrInvalidToken
	}
	claims, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		return jwt.StreamClaims{}, auth.ErrInvalidToken
	}
	return claims, nil
}

// Token generates a short-lived token for SSE and WebSocket connections
func (h *realtimeHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	caller, err := jwt.CallerFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, err := h.authService.StreamToken(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, token)
}

// Stream handles SSE connection for real-time events
func (h *realtimeHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	claims, err := h.authorize(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topicsFor(claims)...)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", claims.UserID)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// WebSocket pushes the same events as Stream over a WebSocket connection.
// Messages sent by the client are read and discarded.
func (h *realtimeHandlerImpl) WebSocket(w http.ResponseWriter, r *http.Request) {
	claims, err := h.authorize(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, cleanup := h.hub.Subscribe(topicsFor(claims)...)
	defer cleanup()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(v interface{}) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(v)
	}

	if err := write(wireEvent{Event: "connected", Data: map[string]string{"status": "connected", "user_id": claims.UserID}}); err != nil {
		return
	}

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := write(wireEvent{Event: event.Name, Data: event.Data}); err != nil {
				return
			}

		case <-keepalive.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return

		case <-r.Context().Done():
			return
		}
	}
}
