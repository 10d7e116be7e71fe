package store

import (
	"encoding/json"

	"github.com/roach88/nono/internal/event"
)

// Session is one recorded robot run.
type Session struct {
	ID           string
	Name         string
	RobotVersion string
	TraceVersion string
}

// NewSession returns a session stamped with the current versions.
func NewSession(id, name string) Session {
	return Session{
		ID:           id,
		Name:         name,
		RobotVersion: event.RobotVersion,
		TraceVersion: event.TraceVersion,
	}
}

// Record is a dispatched event as stored in the log.
type Record struct {
	ID        string
	SessionID string
	Seq       int64
	Kind      event.Kind
	Category  event.Category
	Target    string
	TimeStamp float64

	// Fields is the canonical JSON of event.Event.Fields.
	Fields string
}

// Trace returns the record in the same shape as event.Event.Record, with
// the stored fields embedded verbatim.
func (r Record) Trace() map[string]any {
	return map[string]any{
		"kind":      string(r.Kind),
		"seq":       r.Seq,
		"timeStamp": r.TimeStamp,
		"target":    r.Target,
		"fields":    json.RawMessage(r.Fields),
	}
}

// JSON returns the canonical JSON of Trace.
func (r Record) JSON() (string, error) {
	data, err := event.MarshalCanonical(r.Trace())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
