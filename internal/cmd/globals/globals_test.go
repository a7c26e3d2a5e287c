package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFlagsAndParse(t *testing.T) {
	root := &cobra.Command{Use: "bootdrift"}
	flags := AddFlags(root)

	var parsed *Flags
	child := &cobra.Command{
		Use: "check",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			parsed, err = Parse(cmd)
			return err
		},
	}
	root.AddCommand(child)

	root.SetArgs([]string{"check", "-o", "json", "-v", "--no-color", "--log-level", "warn"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "json", flags.Format)
	require.NotNil(t, parsed)
	assert.Equal(t, "json", parsed.Format)
	assert.True(t, parsed.Verbose)
	assert.True(t, parsed.NoColor)
	assert.False(t, parsed.Quiet)
	assert.Equal(t, "warn", parsed.LogLevel)
}

func TestOutputAlias(t *testing.T) {
	root := &cobra.Command{Use: "bootdrift", RunE: func(*cobra.Command, []string) error { return nil }}
	flags := AddFlags(root)

	root.SetArgs([]string{"--output", "yaml"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "yaml", flags.Format)
}

func TestChanged(t *testing.T) {
	root := &cobra.Command{Use: "bootdrift"}
	flags := AddFlags(root)
	root.AddCommand(&cobra.Command{Use: "check", RunE: func(*cobra.Command, []string) error { return nil }})

	root.SetArgs([]string{"check", "--verbose=false"})
	require.NoError(t, root.Execute())

	assert.True(t, flags.Changed("verbose"))
	assert.False(t, flags.Verbose)
	assert.False(t, flags.Changed("quiet"))
	assert.False(t, (&Flags{Quiet: true}).Changed("quiet"))
}
