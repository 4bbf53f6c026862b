package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/printsweep/printsweep/internal/git"
	"github.com/printsweep/printsweep/internal/types"
)

type RunRecord struct {
	Timestamp      time.Time     `json:"timestamp"`
	RunID          string        `json:"run_id"`
	Root           string        `json:"root"`
	Repo           string        `json:"repo,omitempty"`
	Commit         string        `json:"commit,omitempty"`
	Branch         string        `json:"branch,omitempty"`
	Categories     []string      `json:"categories"`
	DryRun         bool          `json:"dry_run,omitempty"`
	FilesProcessed int           `json:"files_processed"`
	FilesChanged   int           `json:"files_changed"`
	TotalRemoved   int           `json:"total_removed"`
	TotalErrors    int           `json:"total_errors"`
	Duration       string        `json:"duration"`
	TopFiles       []FileSummary `json:"top_files,omitempty"`
}

type FileSummary struct {
	Path    string `json:"path"`
	Removed int    `json:"removed"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".printsweep_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "printsweep_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Undecodable lines are
// skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index in LoadHistory order.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateRunRecord summarizes a batch. TopFiles holds up to ten files with
// the most removed lines.
func CreateRunRecord(root string, cats []types.Category, results types.BatchResult, duration time.Duration, dryRun bool) RunRecord {
	sum := types.Summarize(results)

	changed := make([]FileSummary, 0, len(results))
	for _, r := range results {
		if r.Removed > 0 {
			changed = append(changed, FileSummary{Path: r.Path, Removed: r.Removed})
		}
	}
	sort.SliceStable(changed, func(i, j int) bool { return changed[i].Removed > changed[j].Removed })
	if len(changed) > 10 {
		changed = changed[:10]
	}

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}

	repo, commit, branch := git.RepoMetadata(root)
	return RunRecord{
		Timestamp:      time.Now(),
		RunID:          uuid.NewString(),
		Root:           root,
		Repo:           repo,
		Commit:         commit,
		Branch:         branch,
		Categories:     names,
		DryRun:         dryRun,
		FilesProcessed: sum.FilesProcessed,
		FilesChanged:   sum.FilesChanged,
		TotalRemoved:   sum.TotalRemoved,
		TotalErrors:    sum.TotalErrors,
		Duration:       duration.String(),
		TopFiles:       changed,
	}
}
