package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/config"
)

func flagsFor(t *testing.T, yaml string) *Flags {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Read(path)
	require.NoError(t, err)
	return &Flags{ConfigPath: path, Config: cfg, ConfigErr: cfg.Validate()}
}

func TestConfigValidateCmd_valid(t *testing.T) {
	flags := flagsFor(t, "theme: gruvbox\n")

	out, err := runCLI(t, NewConfigValidateCmd(flags).Register, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "Configuration is valid\n", out)
}

func TestConfigValidateCmd_invalid_text(t *testing.T) {
	flags := flagsFor(t, "theme: neon\ntoast:\n  width: 3\n")

	out, err := runCLI(t, NewConfigValidateCmd(flags).Register, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "✗ theme: unknown theme")
	assert.Contains(t, out, "✗ toast.width")
	assert.Contains(t, out, "2 error(s) found")
}

func TestConfigValidateCmd_json(t *testing.T) {
	flags := flagsFor(t, "rules:\n  - pattern: \"\"\n")

	out, err := runCLI(t, NewConfigValidateCmd(flags).Register, "config", "validate", "--format", "json")
	require.Error(t, err)

	var got struct {
		Valid  bool              `json:"valid"`
		Path   string            `json:"path"`
		Errors []validationIssue `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.Equal(t, flags.ConfigPath, got.Path)
	require.NotEmpty(t, got.Errors)
	assert.Contains(t, got.Errors[0].Field, "rules[0]")
}

func TestCollectIssues_plain_error(t *testing.T) {
	issues := collectIssues(assert.AnError)
	require.Len(t, issues, 1)
	assert.Empty(t, issues[0].Field)
	assert.Equal(t, assert.AnError.Error(), issues[0].Message)
}
