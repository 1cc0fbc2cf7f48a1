package source

import "github.com/theirongolddev/pulse/internal/model"

// RawRecord is one line of a record export file. Either Date or Timestamp
// must be set. Kind and Entity may also arrive under the names the export
// service uses per module (type, status, category, habit).
type RawRecord struct {
	ID        string             `json:"id"`
	Module    string             `json:"module,omitempty"`
	Date      string             `json:"date,omitempty"`
	Timestamp string             `json:"timestamp,omitempty"`
	Kind      string             `json:"kind,omitempty"`
	Entity    string             `json:"entity,omitempty"`
	Label     string             `json:"label,omitempty"`
	Values    map[string]float64 `json:"values,omitempty"`

	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Habit    string `json:"habit,omitempty"`
}

// DiscoveredFile is an export file found during directory scanning.
type DiscoveredFile struct {
	Path string
	// Module is inferred from a <module>.jsonl file name; empty when each
	// line has to name its module.
	Module model.Module
}
