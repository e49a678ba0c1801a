// ABOUTME: Charm sync operations surfaced by the `lifehub sync` commands
// ABOUTME: SSH-key auth means there is no login/logout step

package charm

import (
	"fmt"
	"io"
)

// WriteStatus prints the sync configuration and connection state.
func WriteStatus(w io.Writer, c *Client) error {
	cfg := c.Config()

	fmt.Fprintln(w, "Charm Sync Status")
	fmt.Fprintln(w, "─────────────────")
	fmt.Fprintf(w, "Server:    %s\n", cfg.Host)
	fmt.Fprintf(w, "Auto-sync: %v\n", cfg.AutoSync)

	id, err := c.ID()
	if err != nil {
		fmt.Fprintln(w, "\nStatus: Not connected")
		fmt.Fprintln(w, "\nCharm uses SSH keys for authentication - no login required!")
		return nil //nolint:nilerr // Not connected is a valid state, not an error
	}
	fmt.Fprintln(w, "\nStatus: Connected to Charm Cloud")
	fmt.Fprintf(w, "ID:        %s\n", id)

	if keys, err := c.Keys(); err == nil {
		fmt.Fprintf(w, "Keys:      %d\n", len(keys))
	}
	return nil
}

// Link verifies the account by syncing once and prints the device ID.
func Link(w io.Writer, c *Client) error {
	fmt.Fprintf(w, "Linking to Charm Cloud (%s)...\n", c.Config().Host)

	if err := c.Sync(); err != nil {
		return fmt.Errorf("link failed: %w", err)
	}

	if id, err := c.ID(); err != nil {
		fmt.Fprintln(w, "✓ Device linked (ID unavailable)")
	} else {
		fmt.Fprintf(w, "✓ Linked to account: %s\n", id)
	}
	fmt.Fprintf(w, "✓ Auto-sync: %v\n", c.Config().AutoSync)
	return nil
}

// SyncNow performs an immediate sync.
func SyncNow(w io.Writer, c *Client) error {
	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Fprintln(w, "✓ Synced")
	return nil
}

// Wipe drops every key in the charm database. Nothing happens without confirm.
func Wipe(w io.Writer, c *Client, confirm bool) error {
	if !confirm {
		fmt.Fprintln(w, "WARNING: This will delete ALL local hub data!")
		fmt.Fprintln(w, "\nTo confirm, run:\n  lifehub sync wipe --confirm")
		return nil
	}
	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}
	fmt.Fprintln(w, "✓ All data wiped")
	return nil
}

// SetAutoSync persists the auto-sync preference.
func SetAutoSync(w io.Writer, cfg *Config, enabled bool) error {
	if err := cfg.SetAutoSync(enabled); err != nil {
		return fmt.Errorf("failed to update auto-sync: %w", err)
	}
	if enabled {
		fmt.Fprintln(w, "✓ Auto-sync enabled")
	} else {
		fmt.Fprintln(w, "✓ Auto-sync disabled")
	}
	return nil
}
