package core

import (
	"encoding/json"
	"io"
)

// MarshalResults pretty-prints results as JSON for humans or pipelines.
func MarshalResults(w io.Writer, results BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// UnmarshalResults decodes results JSON, useful for ingestion tests.
func UnmarshalResults(r io.Reader) (BatchResult, error) {
	var rs BatchResult
	if err := json.NewDecoder(r).Decode(&rs); err != nil {
		return nil, err
	}
	return rs, nil
}
