package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RunRecord captures the outcome of the most recent push run
type RunRecord struct {
	StartedAt      string   `json:"startedAt,omitempty"`
	PushedBranches []string `json:"pushedBranches,omitempty"`
	UpToDate       []string `json:"upToDate,omitempty"`
	FailedTopic    string   `json:"failedTopic,omitempty"`
}

// GetRunRecord reads the most recent run record from disk
func GetRunRecord(repoRoot string) (*RunRecord, error) {
	recordPath := filepath.Join(repoRoot, ".git", ".pushbot_last_run")
	data, err := os.ReadFile(recordPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no run record found")
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var record RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse run record: %w", err)
	}
	return &record, nil
}

// PersistRunRecord writes the run record to disk
func PersistRunRecord(repoRoot string, record *RunRecord) error {
	recordPath := filepath.Join(repoRoot, ".git", ".pushbot_last_run")
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	return os.WriteFile(recordPath, data, 0600)
}

// ClearRunRecord removes the run record file
func ClearRunRecord(repoRoot string) error {
	recordPath := filepath.Join(repoRoot, ".git", ".pushbot_last_run")
	err := os.Remove(recordPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear run record: %w", err)
	}
	return nil
}
