// ABOUTME: AI co-pilot chat command
// ABOUTME: One-shot questions or an interactive session that keeps the conversation history
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/lifehub/gateway"
)

func (a *App) aiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Talk to the marketing co-pilot",
	}

	chat := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the co-pilot a question; with no message, start a session",
		Long: `With a message, prints one reply and exits. Without one, reads questions
from stdin until EOF or "exit", keeping the conversation so far as context.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			ai := h.AI()
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				_, err := a.chatOnce(cmd, ai, strings.Join(args, " "), nil)
				return err
			}

			fmt.Fprintln(out, "Co-pilot ready. Type \"exit\" to quit.")
			var history []gateway.ChatTurn
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "\n> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				msg := strings.TrimSpace(scanner.Text())
				if msg == "" {
					continue
				}
				if msg == "exit" || msg == "quit" {
					return nil
				}
				reply, err := a.chatOnce(cmd, ai, msg, history)
				if err != nil {
					return err
				}
				history = append(history,
					gateway.ChatTurn{Role: gateway.RoleUser, Text: msg},
					gateway.ChatTurn{Role: gateway.RoleModel, Text: reply},
				)
			}
		},
	}

	cmd.AddCommand(chat)
	return cmd
}

// chatOnce prints the co-pilot's reply. A missing key is an error; any other
// failure prints the fallback reply so a session can continue.
func (a *App) chatOnce(cmd *cobra.Command, ai gateway.Gateway, msg string, history []gateway.ChatTurn) (string, error) {
	reply, err := ai.Chat(ctxOf(cmd), msg, history)
	switch {
	case errors.Is(err, gateway.ErrMissingCredential):
		return "", aiError{err}
	case err != nil:
		a.logger.Debug("chat failed", zap.Error(err))
		reply = gateway.ChatFallbackMessage
	}
	return reply, printMarkdown(cmd.OutOrStdout(), reply)
}
