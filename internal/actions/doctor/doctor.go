// Package doctor provides diagnostic functionality for checking pushbot environment and repository health.
package doctor

import (
	"fmt"

	"pushbot.dev/pushbot/internal/runtime"
)

// Action runs diagnostic checks on the pushbot environment and repository
func Action(ctx *runtime.Context) error {
	splog := ctx.Splog

	splog.Info("Running pushbot doctor...")
	splog.Newline()

	var warnings []string
	var errors []string

	// Environment checks
	splog.Info("Environment:")
	warnings, errors = checkEnvironment(ctx, warnings, errors)

	splog.Newline()

	// Repository checks
	splog.Info("Repository:")
	warnings, errors = checkRepository(ctx, warnings, errors)

	splog.Newline()

	// Configuration and bookkeeping checks
	splog.Info("Configuration:")
	warnings, errors = checkConfiguration(ctx, warnings, errors)

	// Summary
	splog.Newline()
	switch {
	case len(errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(errors), len(warnings))
		for _, err := range errors {
			splog.Error("  %s", err)
		}
		for _, warn := range warnings {
			splog.Warn("  %s", warn)
		}
		return fmt.Errorf("doctor found %d error(s)", len(errors))
	case len(warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your pushbot setup is mostly healthy.", len(warnings))
		for _, warn := range warnings {
			splog.Warn("  %s", warn)
		}
	default:
		splog.Info("✅ All checks passed. Your pushbot setup is healthy.")
	}

	return nil
}
