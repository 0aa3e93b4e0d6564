package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "storefront", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "seed", "receipt"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)
}

func TestSeedCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	seed, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	file := seed.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "f", file.Shorthand)
}

func TestReceiptCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	receipt, _, err := cmd.Find([]string{"receipt"})
	require.NoError(t, err)

	for _, name := range []string{"user", "order"} {
		require.NotNil(t, receipt.Flags().Lookup(name), name)
	}
}

func TestSeedCommand_RequiresFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"seed"})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestSetup(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "8")

	cfg, logger, err := setup(&RootOptions{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.LogLevel)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), -4), "verbose enables debug")
}

func TestSetup_InvalidConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, _, err := setup(&RootOptions{})
	require.Error(t, err)
}
