package report

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID        string       `json:"id"`
	ShortDesc sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// WriteSARIF writes every removable line as a SARIF 2.1.0 result. Paths are
// made relative to root when possible so code-scanning UIs can link them.
func WriteSARIF(w io.Writer, version, root string, results types.BatchResult) error {
	driver := sarifDriver{Name: "printsweep", Version: version}
	index := map[types.Category]int{}
	for i, sig := range detectors.Signatures() {
		index[sig.Category] = i
		driver.Rules = append(driver.Rules, sarifRule{
			ID:        string(sig.Category),
			ShortDesc: sarifMessage{Text: "debug print statement: " + detectors.DefaultNamespace + ".{" + strings.Join(sig.Methods, ",") + "}"},
		})
	}
	run := sarifRun{Tool: sarifTool{Driver: driver}, Results: []sarifResult{}}
	for _, r := range results {
		uri := filepath.ToSlash(r.Path)
		if root != "" {
			if rel, err := filepath.Rel(root, r.Path); err == nil {
				uri = filepath.ToSlash(rel)
			}
		}
		for _, ln := range r.Lines {
			run.Results = append(run.Results, sarifResult{
				RuleID:    string(ln.Category),
				RuleIndex: index[ln.Category],
				Level:     "warning",
				Message:   sarifMessage{Text: "debug print statement: " + strings.TrimSpace(ln.Text)},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhys{
						ArtifactLocation: sarifArt{URI: uri},
						Region:           sarifRegion{StartLine: ln.Line},
					},
				}},
			})
		}
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
