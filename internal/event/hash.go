package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainEvent is the hash domain for event IDs. The version suffix leaves
// room for a future layout change.
const DomainEvent = "nono/event/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ID computes the content-addressed ID of ev within a session.
// Two events with the same session, seq and record share an ID.
func ID(session string, ev *Event) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"session": session,
		"event":   ev.Record(),
	})
	if err != nil {
		return "", fmt.Errorf("event ID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvent, canonical), nil
}

// MustID is like ID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustID(session string, ev *Event) string {
	id, err := ID(session, ev)
	if err != nil {
		panic(err)
	}
	return id
}
