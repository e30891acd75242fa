// Command chat is a terminal client: it finds a stranger and chats with them.
package main

import (
	"fmt"
	"mood-chat/infrastructure/websocket"
	"os"

	gorilla "github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to a random stranger",
	Long: `chat connects to a mood-chat server and pairs you with the next stranger waiting.
Commands: /next finds a new stranger, /end leaves the current chat, /quit exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if cmd.Flags().Changed("server") {
			config.ServerURL = serverURL
		}
		return chat(cmd, config)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "", "websocket endpoint of the chat server")
}

func chat(cmd *cobra.Command, config Config) error {
	conn, _, err := gorilla.DefaultDialer.Dial(config.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	s := &session{conn: conn, out: cmd.OutOrStdout(), render: renderer{colours: config.Colours}}
	done := make(chan error, 1)
	go s.readLoop(done)

	if err := s.send(websocket.InboundFrame{Type: websocket.StartChatFrame}); err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.render.paintSystem("* Looking for a stranger..."))

	inputDone := make(chan error, 1)
	go func() { inputDone <- s.inputLoop(cmd.InOrStdin()) }()

	select {
	case err := <-inputDone:
		_ = conn.WriteMessage(gorilla.CloseMessage,
			gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, "bye"))
		return err
	case err := <-done:
		if gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) {
			return nil
		}
		return fmt.Errorf("connection lost: %w", err)
	}
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
