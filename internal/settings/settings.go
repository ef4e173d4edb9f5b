// Package settings performs the read-merge-write of the workspace settings
// file. The file is JSON extended with comments (JSONC); comments are
// stripped with tidwall/jsonc before parsing and are not preserved across a
// rewrite. The file is shared with external tooling, so only the telemetry
// fields are touched and unknown sibling keys survive the merge.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Telemetry holds the fields the manager owns inside the settings file.
type Telemetry struct {
	Enabled bool   `json:"enabled"`
	Target  string `json:"target"`
	Project string `json:"project,omitempty"`
	Outfile string `json:"outfile,omitempty"`
}

// WorkspaceFile returns the settings path for a workspace directory.
func WorkspaceFile(workDir string) string {
	return filepath.Join(workDir, ".otelctl", "settings.json")
}

// Apply merges tel into the settings file at path. Existing content is
// parsed after comment stripping; malformed content degrades to an empty
// object with a warning rather than failing, so a broken settings file
// never blocks the collector from starting.
func Apply(path string, tel Telemetry) error {
	doc := map[string]any{}
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(jsonc.ToJSON(b), &doc); err != nil {
			slog.Warn("settings file malformed, rewriting from empty",
				"path", path, "error", err)
			doc = map[string]any{}
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read settings: %w", err)
	}

	cur, _ := doc["telemetry"].(map[string]any)
	if cur == nil {
		cur = map[string]any{}
	}
	cur["enabled"] = tel.Enabled
	cur["target"] = tel.Target
	// Optional fields track the current target only; a value left over
	// from a previous target must not survive the switch.
	delete(cur, "project")
	delete(cur, "outfile")
	if tel.Project != "" {
		cur["project"] = tel.Project
	}
	if tel.Outfile != "" {
		cur["outfile"] = tel.Outfile
	}
	doc["telemetry"] = cur

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	out = append(out, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Read parses the settings file and returns its telemetry section. A
// missing file yields a zero Telemetry.
func Read(path string) (Telemetry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Telemetry{}, nil
		}
		return Telemetry{}, fmt.Errorf("read settings: %w", err)
	}
	var doc struct {
		Telemetry Telemetry `json:"telemetry"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(b), &doc); err != nil {
		return Telemetry{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return doc.Telemetry, nil
}
