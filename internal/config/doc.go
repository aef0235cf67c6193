// Package config manages pushbot configuration and state persistence.
//
// It handles:
//   - Repository-specific configuration
//   - Global user configuration
//   - The record left behind by the most recent push run
package config
