package websocket

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/sink"
	"net/http"

	"github.com/gorilla/websocket"
)

const DefaultConnectionBufferSize = 64

// Handler upgrades HTTP requests and serves one participant per connection.
type Handler struct {
	log        *slog.Logger
	service    contract.IChatService
	upgrader   websocket.Upgrader
	bufferSize int
}

func NewHandler(log *slog.Logger, service contract.IChatService, bufferSize int, allowedOrigins []string) *Handler {
	if bufferSize <= 0 {
		bufferSize = DefaultConnectionBufferSize
	}
	return &Handler{
		log:     log,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		bufferSize: bufferSize,
	}
}

// checkOrigin allows every origin when none is configured.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

// ServeHTTP blocks for the lifetime of the connection. The request context is
// expected to derive from the server's base context so shutdown closes sockets.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Failed to upgrade connection", "error", err)
		return
	}
	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	outbound := sink.NewConnectionSink(h.bufferSize)
	handle, err := h.service.Connect(ctx, outbound)
	if err != nil {
		h.log.Warn("Connect failed", "error", err)
		_ = conn.Close()
		return
	}

	client := newClient(h.log, conn, h.service, outbound, handle)
	go client.WritePump()
	client.ReadPump(ctx)
}
