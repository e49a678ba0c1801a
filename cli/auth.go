// ABOUTME: Passcode gate commands
// ABOUTME: Unlocks the hub for a 30-day session, locks it again and reports status
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/lifehub/auth"
)

func (a *App) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Unlock or lock the hub",
	}

	unlock := &cobra.Command{
		Use:   "unlock",
		Short: "Enter the passcode; the session lasts 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.Hub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !h.Gate().Enabled() {
				fmt.Fprintln(out, "No passcode configured; the hub is always unlocked.")
				return nil
			}
			passcode, err := readPasscode(cmd)
			if err != nil {
				return err
			}
			if err := h.Unlock(passcode); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Unlocked until %s\n", auth.Expires(h.Session()).Format("Jan 2, 2006 3:04 PM"))
			return nil
		},
	}

	lock := &cobra.Command{
		Use:   "lock",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.Hub()
			if err != nil {
				return err
			}
			h.Lock()
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Locked")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the hub is unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.Hub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !h.Gate().Enabled():
				fmt.Fprintln(out, "Status: unlocked (no passcode configured)")
			case h.Unlocked():
				fmt.Fprintln(out, "Status: unlocked")
				fmt.Fprintf(out, "Expires: %s\n", auth.Expires(h.Session()).Format("Jan 2, 2006 3:04 PM"))
			default:
				fmt.Fprintln(out, "Status: locked")
				fmt.Fprintln(out, "\nNext step: lifehub auth unlock")
			}
			return nil
		},
	}

	cmd.AddCommand(unlock, lock, status)
	return cmd
}

// readPasscode prompts without echo on a terminal and reads one line otherwise.
func readPasscode(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Passcode: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read passcode: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read passcode: %w", err)
	}
	return strings.TrimSpace(line), nil
}
