package main

import (
	"errors"
	"os"

	"pushbot.dev/pushbot/internal/cli"
	pushboterrors "pushbot.dev/pushbot/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, pushboterrors.ErrAborted) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
