// Package dataset loads the historical event log snapshot the ranking
// pipeline starts from. The snapshot is a CSV export of recorded
// interactions; loading happens once at startup and the result becomes
// the shared read-only baseline.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"next-action-be/internal/entity"
)

// Expected header columns. Order in the file is free; lookup is by name.
const (
	colSessionId = "session_id"
	colUserId    = "user_id"
	colTimestamp = "ts"
	colEndpoint  = "endpoint"
	colParams    = "params"
)

// Load reads the snapshot at path. The params column holds the JSON
// representation recorded with the event; malformed cells degrade to an
// empty parameter bag rather than failing the load.
func Load(path string) ([]entity.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV event rows from r.
func Read(r io.Reader) ([]entity.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may omit trailing columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colSessionId, colUserId, colTimestamp, colEndpoint} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", required)
		}
	}

	var events []entity.Event
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", len(events)+2, err)
		}
		ev := entity.Event{
			SessionId: cell(record, idx, colSessionId),
			UserId:    cell(record, idx, colUserId),
			Timestamp: cell(record, idx, colTimestamp),
			Endpoint:  cell(record, idx, colEndpoint),
		}
		if raw := cell(record, idx, colParams); raw != "" {
			// ParamBag absorbs malformed JSON as an empty bag.
			_ = json.Unmarshal([]byte(raw), &ev.Params)
		}
		events = append(events, ev)
	}
	return events, nil
}

func cell(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
