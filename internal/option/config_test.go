package option

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, args ...string) (*pflag.FlagSet, func() (*Config, error)) {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefaultConfig.Flags(flags)
	require.NoError(t, flags.Parse(args))

	vp := NewViper()
	require.NoError(t, vp.BindPFlags(flags))
	return flags, func() (*Config, error) { return Populate(vp) }
}

func TestPopulateDefaults(t *testing.T) {
	_, populate := newTestViper(t)
	c, err := populate()
	require.NoError(t, err)

	assert.Equal(t, OutputText, c.Output)
	assert.Equal(t, LogFormatText, c.LogFormat)
	assert.Equal(t, DefaultConfig.Workers, c.Workers)
	assert.Equal(t, []string{".kt", ".kts"}, c.Extensions)
	assert.True(t, c.Color)
	assert.True(t, c.ShowTokens)
	assert.False(t, c.FailOnDiagnostics)
	assert.False(t, c.Metrics)
}

func TestPopulateFlags(t *testing.T) {
	_, populate := newTestViper(t, "-o", "JSON", "-j", "3", "--extensions", "kt,gradle.kts", "--fail-on-diagnostics", "-D")
	c, err := populate()
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, c.Output)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, []string{".kt", ".gradle.kts"}, c.Extensions)
	assert.True(t, c.FailOnDiagnostics)
	assert.True(t, c.Debug)
}

func TestPopulateEnvironment(t *testing.T) {
	t.Setenv("KOTLINLEX_OUTPUT", "yaml")
	t.Setenv("KOTLINLEX_SHOW_TOKENS", "false")
	t.Setenv("KOTLINLEX_EXTENSIONS", "kt,kts")

	_, populate := newTestViper(t)
	c, err := populate()
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, c.Output)
	assert.False(t, c.ShowTokens)
	assert.Equal(t, []string{".kt", ".kts"}, c.Extensions)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("KOTLINLEX_WORKERS", "9")
	_, populate := newTestViper(t, "--workers", "2")
	c, err := populate()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nworkers: 5\nmetrics: true\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefaultConfig.Flags(flags)
	require.NoError(t, flags.Parse(nil))

	vp := NewViper()
	require.NoError(t, vp.BindPFlags(flags))
	require.NoError(t, ReadConfigFile(vp, path))

	c, err := Populate(vp)
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, c.Output)
	assert.Equal(t, 5, c.Workers)
	assert.True(t, c.Metrics)
}

func TestReadConfigFileMissing(t *testing.T) {
	err := ReadConfigFile(NewViper(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read config file")

	t.Setenv("HOME", t.TempDir())
	assert.NoError(t, ReadConfigFile(NewViper(), ""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown output", func(c *Config) { c.Output = "xml" }, "invalid output"},
		{"unknown log format", func(c *Config) { c.LogFormat = "logfmt" }, "invalid log-format"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "must be positive"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			c.Extensions = append([]string(nil), DefaultConfig.Extensions...)
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHasExtension(t *testing.T) {
	c := DefaultConfig
	assert.True(t, c.HasExtension("src/Main.kt"))
	assert.True(t, c.HasExtension("build.gradle.KTS"))
	assert.False(t, c.HasExtension("Main.java"))
	assert.False(t, c.HasExtension("README"))
}

func TestPopulateLogFile(t *testing.T) {
	_, populate := newTestViper(t, "--log-file", "kotlinlex.log", "--log-format", "json")
	c, err := populate()
	require.NoError(t, err)
	assert.Equal(t, "kotlinlex.log", c.LogFile)
	assert.Equal(t, LogFormatJSON, c.LogFormat)
}
