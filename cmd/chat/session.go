package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"mood-chat/infrastructure/websocket"
	"strings"
	"sync"

	gorilla "github.com/gorilla/websocket"
)

// session tracks the room the terminal is in and serializes writes.
type session struct {
	mu     sync.Mutex
	conn   *gorilla.Conn
	roomID string
	out    io.Writer
	render renderer
}

func (s *session) send(frame websocket.InboundFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(frame)
}

func (s *session) room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *session) setRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = id
}

// readLoop prints every frame until the connection closes.
func (s *session) readLoop(done chan<- error) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			done <- err
			return
		}
		var frame websocket.OutboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		switch frame.Type {
		case websocket.ChatStartedFrame:
			s.setRoom(frame.RoomID)
		case websocket.StrangerDisconnectedFrame:
			s.setRoom("")
		}
		if line, ok := s.render.Render(frame); ok {
			fmt.Fprintln(s.out, line)
		}
	}
}

// inputLoop maps terminal lines to frames. It returns on /quit or end of input.
func (s *session) inputLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		var err error
		switch line {
		case "":
			continue
		case "/quit":
			return nil
		case "/end":
			err = s.endChat()
		case "/next":
			if err = s.endChat(); err == nil {
				err = s.send(websocket.InboundFrame{Type: websocket.StartChatFrame})
				fmt.Fprintln(s.out, s.render.paintSystem("* Looking for a stranger..."))
			}
		default:
			room := s.room()
			if room == "" {
				fmt.Fprintln(s.out, s.render.paintSystem("* Not in a chat. Type /next to find a stranger."))
				continue
			}
			err = s.send(websocket.InboundFrame{Type: websocket.SendMessageFrame, RoomID: room, Message: line})
		}
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *session) endChat() error {
	room := s.room()
	if room == "" {
		return nil
	}
	s.setRoom("")
	return s.send(websocket.InboundFrame{Type: websocket.EndChatFrame, RoomID: room})
}
