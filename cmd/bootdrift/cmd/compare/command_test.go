package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bootdrift/internal/cmd/application"
	"github.com/agentstation/bootdrift/pkg/versions"
)

func run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "bootdrift"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	root.AddCommand(NewCommand(&application.Mock{OutputFormatFunc: func() string { return format }}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"compare"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompareTable(t *testing.T) {
	tests := []struct {
		left, right string
		want        string
	}{
		{"2.0.0-RC1", "2.0.0", "↓ 2.0.0-RC1 is older than 2.0.0\n"},
		{"1.0.0.GA", "1.0", "= 1.0.0.GA is the same as 1.0\n"},
		{"1.10.0", "1.9.9", "↑ 1.10.0 is newer than 1.9.9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.left+"_"+tt.right, func(t *testing.T) {
			out, err := run(t, "table", tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCompareJSON(t *testing.T) {
	out, err := run(t, "json", "5.3.x", "5.3.31")
	require.NoError(t, err)

	var r Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "5.3.x", r.Left)
	assert.Equal(t, versions.Older, r.Comparison)
}

func TestCompareArgs(t *testing.T) {
	_, err := run(t, "table", "1.0")
	assert.Error(t, err)
}
