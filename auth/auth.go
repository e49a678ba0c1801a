// ABOUTME: Shared-passcode gate for the hub with a 30-day session proof
// ABOUTME: The gate is bypassed entirely when no passcode is configured
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"
)

// SessionTTL is how long an unlocked session stays valid.
const SessionTTL = 30 * 24 * time.Hour

var (
	ErrWrongPasscode = errors.New("incorrect passcode")
	ErrLocked        = errors.New("hub is locked: run `lifehub auth unlock`")
)

// Session is the persisted proof of a successful unlock. At is in epoch
// milliseconds.
type Session struct {
	OK bool  `json:"ok"`
	At int64 `json:"at"`
}

// UnlockedAt returns the unlock time.
func (s Session) UnlockedAt() time.Time {
	return time.UnixMilli(s.At)
}

// Gate checks the configured passcode.
type Gate struct {
	Passcode string
}

// Enabled reports whether a passcode is configured.
func (g Gate) Enabled() bool {
	return strings.TrimSpace(g.Passcode) != ""
}

// Valid reports whether session still unlocks the hub at now. A disabled gate
// accepts everything.
func (g Gate) Valid(session Session, now time.Time) bool {
	if !g.Enabled() {
		return true
	}
	return Valid(session, now)
}

// Valid reports whether session is ok and younger than SessionTTL.
func Valid(session Session, now time.Time) bool {
	if !session.OK {
		return false
	}
	return now.UnixMilli()-session.At < SessionTTL.Milliseconds()
}

// Unlock compares the trimmed input to the passcode exactly as configured and
// returns a fresh session on match.
func (g Gate) Unlock(input string, now time.Time) (Session, error) {
	if !g.Enabled() {
		return Session{OK: true, At: now.UnixMilli()}, nil
	}
	got := strings.TrimSpace(input)
	if subtle.ConstantTimeCompare([]byte(got), []byte(g.Passcode)) != 1 {
		return Session{}, ErrWrongPasscode
	}
	return Session{OK: true, At: now.UnixMilli()}, nil
}

// Require returns ErrLocked unless session is valid at now.
func (g Gate) Require(session Session, now time.Time) error {
	if g.Valid(session, now) {
		return nil
	}
	return ErrLocked
}

// Expires returns when session stops being valid.
func Expires(session Session) time.Time {
	return session.UnlockedAt().Add(SessionTTL)
}
