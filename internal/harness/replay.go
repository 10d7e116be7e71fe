package harness

import (
	"fmt"

	"github.com/roach88/nono/internal/store"
)

// Divergence is the first point where a replayed trace differs from a
// recorded one. Recorded or Replayed is empty when that side ran out.
type Divergence struct {
	Seq      int64
	Recorded string
	Replayed string
}

func (d *Divergence) Error() string {
	switch {
	case d.Recorded == "":
		return fmt.Sprintf("seq %d: replay emitted an extra event %s", d.Seq, d.Replayed)
	case d.Replayed == "":
		return fmt.Sprintf("seq %d: replay stopped before recorded event %s", d.Seq, d.Recorded)
	default:
		return fmt.Sprintf("seq %d: recorded %s, replayed %s", d.Seq, d.Recorded, d.Replayed)
	}
}

// Compare returns the first divergence between recorded and replayed, or
// nil when they are identical. Event ids are content addressed, so equal
// ids mean equal session, seq, kind, target, timestamp and fields.
func Compare(recorded []store.Record, replayed []TraceEvent) (*Divergence, error) {
	n := max(len(recorded), len(replayed))
	for i := range n {
		var rec, rep string
		var seq int64
		if i < len(recorded) {
			doc, err := recorded[i].JSON()
			if err != nil {
				return nil, fmt.Errorf("recorded event %d: %w", recorded[i].Seq, err)
			}
			rec, seq = doc, recorded[i].Seq
		}
		if i < len(replayed) {
			rep, seq = replayed[i].Doc, replayed[i].Seq
		}

		if i < len(recorded) && i < len(replayed) && recorded[i].ID == replayed[i].ID {
			continue
		}
		return &Divergence{Seq: seq, Recorded: rec, Replayed: rep}, nil
	}
	return nil, nil
}

// Replay reruns scenario in a fresh in-memory store under session and
// compares the result with recorded. A nil Divergence means the run is
// reproducible. Any WithStore option is overridden.
func Replay(scenario *Scenario, session string, recorded []store.Record, opts ...Option) (*Result, *Divergence, error) {
	replayed := *scenario
	replayed.Session = session

	st, err := store.OpenMemory()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	result, err := Run(&replayed, append(opts[:len(opts):len(opts)], WithStore(st))...)
	if err != nil {
		return nil, nil, err
	}

	div, err := Compare(recorded, result.Trace)
	if err != nil {
		return nil, nil, err
	}
	return result, div, nil
}
