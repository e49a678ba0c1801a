// ABOUTME: Shared output helpers for CLI commands
// ABOUTME: Tabwriter tables, id-prefix resolution and glamour rendering for AI text
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/lifehub/gateway"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(rules, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	_, _ = fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// resolve finds the single item whose id equals ref or starts with it.
func resolve[T any](items []T, idOf func(T) string, ref, kind string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s ID is required", kind)
	}
	var matches []T
	for _, item := range items {
		id := idOf(item)
		if id == ref {
			return item, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %s", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%q matches %d %ss; use more of the ID", ref, len(matches), kind)
	}
}

// printMarkdown renders md through glamour when w is a terminal and writes it
// verbatim otherwise.
func printMarkdown(w io.Writer, md string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprintln(w, md)
		return err
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func bullets(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	return b.String()
}

// aiError shows the agent-facing text for a gateway failure and still
// unwraps to the gateway sentinel.
type aiError struct{ err error }

func (e aiError) Error() string { return gateway.UserMessage(e.err) }
func (e aiError) Unwrap() error { return e.err }

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
