// ABOUTME: Storage key table for every persisted collection
// ABOUTME: Also provides the cache wipe used by the settings screen
package store

import (
	"errors"
	"fmt"
)

// Prefix namespaces the versioned hub keys.
const Prefix = "latimore."

const (
	KeyGeminiAPIKey   = Prefix + "gemini_api_key"
	KeyScheduledPosts = Prefix + "scheduled_posts.v1"
	KeyActiveTab      = Prefix + "active_tab.v1"
	KeyClients        = Prefix + "clients.v1"
	KeyLinks          = Prefix + "links.v1"
	KeyDocs           = Prefix + "docs.v1"
	KeyHubSession     = Prefix + "hub_session.v1"
	KeyConnectors     = Prefix + "connectors.v1"
	KeyAssets         = Prefix + "assets.v1"

	// These two predate the versioned prefix and keep their original names.
	KeyUserTemplates = "latimore_user_templates"
	KeyLegacyFunnels = "latimore_legacy_funnels"
)

// DefaultActiveTab is the section shown when nothing has been stored.
const DefaultActiveTab = "dashboard"

// CacheKeys are the keys removed by WipeCache.
func CacheKeys() []string {
	return []string{
		KeyGeminiAPIKey,
		KeyScheduledPosts,
		KeyActiveTab,
		KeyClients,
		KeyLinks,
		KeyDocs,
		KeyHubSession,
	}
}

// AllKeys lists every key the hub writes.
func AllKeys() []string {
	return append(CacheKeys(), KeyConnectors, KeyAssets, KeyUserTemplates, KeyLegacyFunnels)
}

// WipeCache deletes every cache key, continuing past individual failures.
func WipeCache(kv KV) error {
	var errs []error
	for _, key := range CacheKeys() {
		if err := kv.Delete([]byte(key)); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// CopyResult reports what Copy did per key.
type CopyResult struct {
	Copied  []string
	Missing []string
}

// Copy writes every hub key present in src into dst. Keys absent from src are
// left alone in dst. With dryRun nothing is written.
func Copy(dst, src KV, dryRun bool) (CopyResult, error) {
	var res CopyResult
	for _, key := range AllKeys() {
		raw, err := src.Get([]byte(key))
		if errors.Is(err, ErrNotFound) || (err == nil && len(raw) == 0) {
			res.Missing = append(res.Missing, key)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !dryRun {
			if err := dst.Set([]byte(key), raw); err != nil {
				return res, fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		res.Copied = append(res.Copied, key)
	}
	return res, nil
}
