// Package feature derives the per-user temporal/session feature vector the
// ranking model consumes. Building is a pure read-derive-return operation:
// the historical log is merged with the request's new events locally and
// never written back here.
package feature

import (
	"fmt"
	"sort"
	"time"

	"next-action-be/internal/entity"
)

// PrevActionDepth is how many prior actions and session-continuity flags
// the model was trained on.
const PrevActionDepth = 3

// ParamSlots is the number of positional parameter slots.
const ParamSlots = 3

// Vector is the feature row for one inference call. Label-like fields
// (previous actions, parameter slots) stay strings; absent values are the
// empty string, matching the model's training-time encoding.
type Vector struct {
	SecondsSinceMidnight int
	SessionContinuity    [PrevActionDepth]bool
	Day                  int
	Month                int
	Week                 int // ISO week number
	Year                 int
	PrevActions          [PrevActionDepth]string
	Params               [ParamSlots]string
}

// Build merges the historical log with the request's new events, sorts by
// (userId, timestamp) and derives the vector from the LAST row of the
// given user's partition.
//
// Caller contract: the new events' timestamps must sort after everything
// already recorded for that user. This is not re-validated; violating it
// silently derives features for the wrong row.
func Build(newEvents, log []entity.Event, userId string) (Vector, error) {
	merged := make([]row, 0, len(log)+len(newEvents))
	for _, ev := range log {
		merged = append(merged, newRow(ev))
	}
	for _, ev := range newEvents {
		merged = append(merged, newRow(ev))
	}

	// Timestamps are parsed once per event and compared chronologically,
	// so mixed accepted layouts still order correctly. Unparseable values
	// fall back to raw-string comparison.
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.ev.UserId != b.ev.UserId {
			return a.ev.UserId < b.ev.UserId
		}
		if a.parsed && b.parsed {
			return a.ts.Before(b.ts)
		}
		return a.ev.Timestamp < b.ev.Timestamp
	})

	var partition []row
	for _, r := range merged {
		if r.ev.UserId == userId {
			partition = append(partition, r)
		}
	}
	if len(partition) == 0 {
		return Vector{}, fmt.Errorf("no events for user %s", userId)
	}

	lastRow := partition[len(partition)-1]
	if !lastRow.parsed {
		return Vector{}, fmt.Errorf("parse timestamp %q: unsupported layout", lastRow.ev.Timestamp)
	}
	last, ts := lastRow.ev, lastRow.ts

	var v Vector
	v.SecondsSinceMidnight = ts.Hour()*3600 + ts.Minute()*60 + ts.Second()
	v.Day = ts.Day()
	v.Month = int(ts.Month())
	_, v.Week = ts.ISOWeek()
	v.Year = ts.Year()

	for i := 1; i <= PrevActionDepth; i++ {
		idx := len(partition) - 1 - i
		if idx < 0 {
			continue // sequence boundary: empty action, no continuity
		}
		v.PrevActions[i-1] = partition[idx].ev.Action
		v.SessionContinuity[i-1] = partition[idx].ev.SessionId == last.SessionId
	}

	for i, val := range last.Params.Values() {
		if i >= ParamSlots {
			break
		}
		v.Params[i] = val
	}

	return v, nil
}

// row pairs an event with its timestamp parsed once for sorting.
type row struct {
	ev     entity.Event
	ts     time.Time
	parsed bool
}

func newRow(ev entity.Event) row {
	ts, err := parseTimestamp(ev.Timestamp)
	return row{ev: ev, ts: ts, parsed: err == nil}
}

// parseTimestamp accepts RFC3339 and zoneless ISO-8601 forms.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported layout")
}
