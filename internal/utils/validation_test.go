package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsInteractiveEnvOverrides(t *testing.T) {
	t.Run("PUSHBOT_NON_INTERACTIVE forces false", func(t *testing.T) {
		t.Setenv("PUSHBOT_NON_INTERACTIVE", "1")
		require.False(t, IsInteractive())
	})

	t.Run("PUSHBOT_TEST_NO_INTERACTIVE forces false", func(t *testing.T) {
		t.Setenv("PUSHBOT_TEST_NO_INTERACTIVE", "1")
		require.False(t, IsInteractive())
	})
}
