package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	UpstreamRemote *string  `json:"upstreamRemote,omitempty"`
	UpstreamBranch *string  `json:"upstreamBranch,omitempty"`
	PushRemote     *string  `json:"pushRemote,omitempty"`
	BranchPrefix   *string  `json:"branchPrefix,omitempty"`
	UpstreamURLs   []string `json:"upstreamUrls,omitempty"`
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// GetUpstreamBranch returns the configured upstream branch, or "main" as default
func GetUpstreamBranch(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.UpstreamBranch != nil && *config.UpstreamBranch != "" {
		return *config.UpstreamBranch, nil
	}

	// Default to "main"
	return "main", nil
}

// SetUpstreamBranch updates the upstream branch in the config
func SetUpstreamBranch(repoRoot string, branchName string) error {
	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.UpstreamBranch = &branchName

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, configJSON, 0600)
}

// GetUpstreamRemote returns the configured upstream remote name, or empty
// when resolution should fall back to URL matching
func GetUpstreamRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.UpstreamRemote != nil {
		return *config.UpstreamRemote, nil
	}

	return "", nil
}

// SetUpstreamRemote updates the upstream remote name in the config
func SetUpstreamRemote(repoRoot string, remoteName string) error {
	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.UpstreamRemote = &remoteName

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, configJSON, 0600)
}

// GetPushRemote returns the configured push destination, or empty when the
// destination must be resolved interactively
func GetPushRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.PushRemote != nil {
		return *config.PushRemote, nil
	}

	return "", nil
}

// SetPushRemote updates the push destination in the config
func SetPushRemote(repoRoot string, remoteName string) error {
	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	// Validate repo root exists
	if _, err := os.Stat(repoRoot); err != nil {
		return fmt.Errorf("repository root does not exist: %w", err)
	}

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.PushRemote = &remoteName

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, configJSON, 0600)
}

// GetBranchPrefix returns the branch prefix from config, or the default if not set
func GetBranchPrefix(repoRoot string) (BranchPrefix, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.BranchPrefix != nil {
		return NewBranchPrefix(*config.BranchPrefix)
	}

	return DefaultBranchPrefix, nil
}

// SetBranchPrefix updates the branch prefix in the config
func SetBranchPrefix(repoRoot string, prefix string) error {
	// Validate before persisting
	if _, err := NewBranchPrefix(prefix); err != nil {
		return err
	}

	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.BranchPrefix = &prefix

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, configJSON, 0600)
}

// GetUpstreamURLs returns the repo-level allowlist of upstream remote URLs
func GetUpstreamURLs(repoRoot string) ([]string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	return config.UpstreamURLs, nil
}

// AddUpstreamURL adds a URL to the repo-level upstream allowlist
func AddUpstreamURL(repoRoot string, url string) error {
	configPath := filepath.Join(repoRoot, ".git", ".pushbot_config")

	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	if contains(config.UpstreamURLs, url) {
		return fmt.Errorf("'%s' is already in the upstream allowlist", url)
	}

	config.UpstreamURLs = append(config.UpstreamURLs, url)

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, configJSON, 0600)
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// IsInitialized checks if pushbot has been initialized
func IsInitialized(repoRoot string) bool {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return false
	}
	return config.UpstreamBranch != nil && *config.UpstreamBranch != ""
}
