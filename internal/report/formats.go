package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/printsweep/printsweep/internal/types"
	"gopkg.in/yaml.v3"
)

// Envelope is the machine-readable shape of a run.
type Envelope struct {
	Version    string             `json:"version" yaml:"version"`
	Timestamp  time.Time          `json:"timestamp" yaml:"timestamp"`
	Root       string             `json:"root,omitempty" yaml:"root,omitempty"`
	Categories []types.Category   `json:"categories" yaml:"categories"`
	DryRun     bool               `json:"dry_run" yaml:"dry_run"`
	Summary    types.Summary      `json:"summary" yaml:"summary"`
	Files      []types.FileResult `json:"files" yaml:"files"`
}

func NewEnvelope(version, root string, cats []types.Category, dryRun bool, results types.BatchResult) Envelope {
	files := []types.FileResult(results)
	if files == nil {
		files = []types.FileResult{}
	}
	return Envelope{
		Version:    version,
		Timestamp:  time.Now().UTC(),
		Root:       root,
		Categories: cats,
		DryRun:     dryRun,
		Summary:    types.Summarize(results),
		Files:      files,
	}
}

func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func WriteYAML(w io.Writer, env Envelope) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return err
	}
	return enc.Close()
}
