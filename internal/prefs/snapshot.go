package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const SnapshotVersion = 1

const maxSnapshotBytes = 4 * 1024 * 1024

// ErrInvalidFormat reports a preference file that is not a snapshot.
var ErrInvalidFormat = errors.New("invalid preference file format")

// Snapshot is the portable export of the exclusion set.
type Snapshot struct {
	ExcludedIDs []string  `json:"excludedIds"`
	ExportedAt  time.Time `json:"exportedAt"`
	Version     int       `json:"version"`
}

func WriteSnapshot(w io.Writer, snap Snapshot) error {
	if snap.ExcludedIDs == nil {
		snap.ExcludedIDs = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot parses and validates an imported file. Only excludedIds is
// required; exportedAt and version are checked when present.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSnapshotBytes+1))
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) > maxSnapshotBytes {
		return Snapshot{}, fmt.Errorf("%w: file is too large", ErrInvalidFormat)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Snapshot{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidFormat)
	}

	rawIDs, ok := fields["excludedIds"]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: missing excludedIds", ErrInvalidFormat)
	}
	var ids []string
	if err := json.Unmarshal(rawIDs, &ids); err != nil || ids == nil {
		return Snapshot{}, fmt.Errorf("%w: excludedIds must be an array of strings", ErrInvalidFormat)
	}
	snap := Snapshot{ExcludedIDs: make([]string, 0, len(ids)), Version: SnapshotVersion}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return Snapshot{}, fmt.Errorf("%w: excludedIds contains an empty identifier", ErrInvalidFormat)
		}
		snap.ExcludedIDs = append(snap.ExcludedIDs, id)
	}

	if rawVersion, ok := fields["version"]; ok {
		if err := json.Unmarshal(rawVersion, &snap.Version); err != nil {
			return Snapshot{}, fmt.Errorf("%w: version must be a number", ErrInvalidFormat)
		}
		if snap.Version != SnapshotVersion {
			return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, snap.Version)
		}
	}
	if rawAt, ok := fields["exportedAt"]; ok {
		if err := json.Unmarshal(rawAt, &snap.ExportedAt); err != nil {
			return Snapshot{}, fmt.Errorf("%w: exportedAt must be an ISO-8601 timestamp", ErrInvalidFormat)
		}
	}
	return snap, nil
}

// SnapshotFilename is the default export name for a given moment.
func SnapshotFilename(now time.Time) string {
	return fmt.Sprintf("coinboard-excluded-%s.json", now.UTC().Format("20060102-150405"))
}
