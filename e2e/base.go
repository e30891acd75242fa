// Package e2e drives a running chat server and classifier from the outside.
package e2e

import (
	"context"
	"fmt"
	"mood-chat/auth"
	"mood-chat/infrastructure/grpc/safetypb"
	"mood-chat/infrastructure/websocket"
	"strings"
	"time"

	"github.com/gookit/color"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerURL == "" {
		s.T().Skip("E2E_SERVER_URL not set")
	}
}

func (s *BaseSuite) step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Participant is one websocket connection to the chat server.
type Participant struct {
	s    *BaseSuite
	name string
	conn *gorilla.Conn
}

func (s *BaseSuite) Connect(name string) *Participant {
	s.step("Connecting " + name)
	conn, _, err := gorilla.DefaultDialer.Dial(s.Config.ServerURL, nil)
	s.Require().NoError(err, "Failed to connect to "+s.Config.ServerURL)
	s.T().Cleanup(func() { _ = conn.Close() })
	return &Participant{s: s, name: name, conn: conn}
}

func (p *Participant) Send(frame websocket.InboundFrame) {
	p.s.Require().NoError(p.conn.WriteJSON(frame), p.name+" could not send")
}

func (p *Participant) Receive() websocket.OutboundFrame {
	p.s.Require().NoError(p.conn.SetReadDeadline(time.Now().Add(10 * time.Second)))
	var frame websocket.OutboundFrame
	p.s.Require().NoError(p.conn.ReadJSON(&frame), p.name+" received nothing")
	if p.s.Config.DebugJSON {
		p.s.T().Logf("%s <- %+v", p.name, frame)
	}
	return frame
}

func (p *Participant) Close() {
	_ = p.conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""))
	_ = p.conn.Close()
}

// WithClassifier provides a SafetyClassifier client within a contextual test step
func (s *BaseSuite) WithClassifier(name string, fn func(ctx context.Context, client safetypb.SafetyClassifierClient)) {
	if s.Config.ClassifierAddr == "" {
		s.T().Skip("E2E_CLASSIFIER_ADDR not set")
	}
	s.step(name)

	marshaler := protojson.MarshalOptions{UseProtoNames: true, Multiline: true, EmitUnpopulated: true}
	options := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err == nil {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			s.T().Log(logBuilder.String())
			return err
		}),
	}
	if s.Config.AuthSecret != "" {
		token, err := auth.NewTokenIssuer(s.Config.AuthSecret, time.Hour).Generate("e2e", auth.RoleClassifier)
		s.Require().NoError(err)
		options = append(options, grpc.WithPerRPCCredentials(auth.BearerCredentials{Token: token, Insecure: true}))
	}

	conn, err := grpc.NewClient(s.Config.ClassifierAddr, options...)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.ClassifierAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fn(ctx, safetypb.NewSafetyClassifierClient(conn))
}
