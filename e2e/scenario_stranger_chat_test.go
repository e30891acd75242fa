package e2e

import (
	"context"
	"mood-chat/infrastructure/grpc/safetypb"
	"mood-chat/infrastructure/websocket"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type testStrangerChatSuite struct {
	BaseSuite
}

func TestStrangerChatSuite(t *testing.T) {
	suite.Run(t, &testStrangerChatSuite{})
}

func (s *testStrangerChatSuite) TestFullConversation() {
	alice := s.Connect("alice")
	bob := s.Connect("bob")
	var roomID string

	s.Run("Step 1: both ask for a stranger and get paired", func() {
		alice.Send(websocket.InboundFrame{Type: websocket.StartChatFrame})
		bob.Send(websocket.InboundFrame{Type: websocket.StartChatFrame})

		started := alice.Receive()
		s.Require().Equal(websocket.ChatStartedFrame, started.Type)
		s.Require().Equal(started.RoomID, bob.Receive().RoomID)
		roomID = started.RoomID

		s.Require().Equal("system", alice.Receive().From)
		s.Require().Equal("system", bob.Receive().From)
	})

	s.Run("Step 2: a safe message reaches both sides", func() {
		alice.Send(websocket.InboundFrame{Type: websocket.SendMessageFrame, RoomID: roomID, Message: "hello there"})
		s.Require().Equal("stranger", bob.Receive().From)
		s.Require().Equal("you", alice.Receive().From)
	})

	s.Run("Step 3: a crisis message is only flagged to its sender", func() {
		alice.Send(websocket.InboundFrame{Type: websocket.SendMessageFrame, RoomID: roomID, Message: "I want to kill myself"})
		s.Require().Equal(websocket.FlaggedFrame, alice.Receive().Type)
	})

	s.Run("Step 4: the survivor is told when the other side leaves", func() {
		alice.Close()
		s.Require().Equal(websocket.StrangerDisconnectedFrame, bob.Receive().Type)
	})
}

func (s *testStrangerChatSuite) TestClassifierSidecar() {
	s.WithClassifier("Classify a distress message", func(ctx context.Context, client safetypb.SafetyClassifierClient) {
		response, err := client.Classify(ctx, wrapperspb.String("I want to kill myself"))
		s.Require().NoError(err)

		_, label, err := safetypb.ParseVerdict(response)
		s.Require().NoError(err)
		s.Require().Equal("unsafe", label)
	})
}
