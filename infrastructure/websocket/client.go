package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/sink"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Every rune of a maximum message may arrive as an escaped surrogate
	// pair, twelve bytes each, plus room for the rest of the frame.
	maxFrameSize = MaxMessageLength*12 + 1024

	// Frames read but not yet handled by the client's worker.
	inboundQueueSize = 16

	disconnectTimeout = 5 * time.Second
)

// Client is one participant connection: a read pump turning frames into chat
// service calls and a write pump draining the participant's sink.
type Client struct {
	log     *slog.Logger
	conn    *websocket.Conn
	service contract.IChatService
	sink    *sink.ConnectionSink
	handle  domain.Handle
	inbound chan InboundFrame
	done    chan struct{}
}

func newClient(log *slog.Logger, conn *websocket.Conn, service contract.IChatService,
	sink *sink.ConnectionSink, handle domain.Handle) *Client {
	return &Client{
		log:     log.With("handle", handle),
		conn:    conn,
		service: service,
		sink:    sink,
		handle:  handle,
		inbound: make(chan InboundFrame, inboundQueueSize),
		done:    make(chan struct{}),
	}
}

// ReadPump owns all reads of the connection and hands frames, in order, to a
// worker calling the chat service. When it returns, the frame being handled is
// canceled, the participant is disconnected from the chat core and the write
// pump stops.
func (c *Client) ReadPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	handled := make(chan struct{})
	go func() {
		c.handleFrames(ctx)
		close(handled)
	}()

	defer func() {
		cancel()
		close(c.done)
		disconnectCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), disconnectTimeout)
		defer stop()
		if err := c.service.Disconnect(disconnectCtx, c.handle); err != nil {
			c.log.Warn("Disconnect failed", "error", err)
		}
		_ = c.conn.Close()
		<-handled
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Connection closed unexpectedly", "error", err)
			}
			return
		}
		frame, err := DecodeFrame(data)
		if err != nil {
			c.log.Debug("Frame ignored", "error", err)
			continue
		}
		select {
		case c.inbound <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// handleFrames runs the chat service calls of one participant one at a time.
// The core ignores calls landing after the participant's disconnect.
func (c *Client) handleFrames(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-c.inbound:
			if err := c.dispatch(ctx, frame); err != nil && ctx.Err() == nil {
				c.log.Warn("Inbound event failed", "type", frame.Type, "error", err)
			}
		}
	}
}

func (c *Client) dispatch(ctx context.Context, frame InboundFrame) error {
	switch frame.Type {
	case StartChatFrame:
		return c.service.StartChat(ctx, c.handle)
	case SendMessageFrame:
		return c.service.SendMessage(ctx, c.handle, domain.RoomID(frame.RoomID), frame.Message)
	case EndChatFrame:
		return c.service.EndChat(ctx, c.handle, domain.RoomID(frame.RoomID))
	default:
		return nil
	}
}

// WritePump owns all writes of the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case n := <-c.sink.Events:
			frame, ok := EncodeNotification(n)
			if !ok {
				c.log.Warn("Unknown notification dropped", "type", n.Type())
				continue
			}
			data, err := json.Marshal(frame)
			if err != nil {
				c.log.Error("Frame encoding failed", "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("Write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
