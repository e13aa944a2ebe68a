// Package option holds the settings of one kotlinlex invocation, merged
// from command-line flags, KOTLINLEX_* environment variables and an
// optional YAML config file.
package option

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileArg is the path of an explicit config file
	ConfigFileArg = "config"

	// DebugArg enables debug logging
	DebugArg = "debug"

	// LogFormatArg selects the log encoding (text or json)
	LogFormatArg = "log-format"

	// LogFileArg additionally writes logs to a rotated file
	LogFileArg = "log-file"

	// OutputArg selects the report format
	OutputArg = "output"

	// WorkersArg bounds the number of files analysed in parallel
	WorkersArg = "workers"

	// ColorArg enables coloured diagnostics
	ColorArg = "color"

	// ExtensionsArg lists the file extensions collected from directories
	ExtensionsArg = "extensions"

	// ShowTokensArg includes the token table in text reports
	ShowTokensArg = "show-tokens"

	// FailOnDiagnosticsArg makes the lex command exit non-zero on any diagnostic
	FailOnDiagnosticsArg = "fail-on-diagnostics"

	// MetricsArg dumps the analysis metrics after the reports
	MetricsArg = "metrics"
)

const (
	// EnvPrefix prefixes every environment variable read
	EnvPrefix = "KOTLINLEX"

	// DefaultConfigName is the config file looked up when --config is unset
	DefaultConfigName = ".kotlinlex"
)

// Report formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the merged configuration.
type Config struct {
	Debug             bool     `yaml:"debug"`
	LogFormat         string   `yaml:"log-format"`
	LogFile           string   `yaml:"log-file,omitempty"`
	Output            string   `yaml:"output"`
	Workers           int      `yaml:"workers"`
	Color             bool     `yaml:"color"`
	Extensions        []string `yaml:"extensions"`
	ShowTokens        bool     `yaml:"show-tokens"`
	FailOnDiagnostics bool     `yaml:"fail-on-diagnostics"`
	Metrics           bool     `yaml:"metrics"`
}

// DefaultConfig holds the values used when nothing else is set.
var DefaultConfig = Config{
	LogFormat:  LogFormatText,
	Output:     OutputText,
	Workers:    runtime.NumCPU(),
	Color:      true,
	Extensions: []string{".kt", ".kts"},
	ShowTokens: true,
}

// Flags registers one flag per setting, defaulting to def.
func (def Config) Flags(flags *pflag.FlagSet) {
	flags.BoolP(DebugArg, "D", def.Debug, "Enable debug logging")
	flags.String(LogFormatArg, def.LogFormat, "Log format (text, json)")
	flags.String(LogFileArg, def.LogFile, "Also write logs to this file, rotated at 100 MB")
	flags.StringP(OutputArg, "o", def.Output, "Report format (text, json, yaml)")
	flags.IntP(WorkersArg, "j", def.Workers, "Number of files analysed in parallel")
	flags.Bool(ColorArg, def.Color, "Colour diagnostics when writing to a terminal")
	flags.StringSlice(ExtensionsArg, def.Extensions, "File extensions collected when walking directories")
	flags.Bool(ShowTokensArg, def.ShowTokens, "Include the token table in text reports")
	flags.Bool(FailOnDiagnosticsArg, def.FailOnDiagnostics, "Exit with a non-zero status when any diagnostic is reported")
	flags.Bool(MetricsArg, def.Metrics, "Print analysis metrics in Prometheus text format")
}

// NewViper returns a viper instance reading KOTLINLEX_* variables, with
// dashes in keys mapped to underscores.
func NewViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	return vp
}

// ReadConfigFile loads path into vp. With an empty path it looks for
// DefaultConfigName in the working and home directories and tolerates its
// absence.
func ReadConfigFile(vp *viper.Viper, path string) error {
	if path != "" {
		vp.SetConfigFile(path)
	} else {
		vp.SetConfigName(DefaultConfigName)
		vp.SetConfigType("yaml")
		vp.AddConfigPath(".")
		vp.AddConfigPath("$HOME")
	}

	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrapf(err, "unable to read config file %q", path)
	}
	return nil
}

// Populate builds a validated Config from vp.
func Populate(vp *viper.Viper) (*Config, error) {
	c := &Config{
		Debug:             vp.GetBool(DebugArg),
		LogFormat:         vp.GetString(LogFormatArg),
		LogFile:           vp.GetString(LogFileArg),
		Output:            strings.ToLower(vp.GetString(OutputArg)),
		Workers:           vp.GetInt(WorkersArg),
		Color:             vp.GetBool(ColorArg),
		Extensions:        normalizeExtensions(vp.GetStringSlice(ExtensionsArg)),
		ShowTokens:        vp.GetBool(ShowTokensArg),
		FailOnDiagnostics: vp.GetBool(FailOnDiagnosticsArg),
		Metrics:           vp.GetBool(MetricsArg),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings the lex command cannot honour.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid %s %q: must be one of %s, %s, %s", OutputArg, c.Output, OutputText, OutputJSON, OutputYAML)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid %s %q: must be %s or %s", LogFormatArg, c.LogFormat, LogFormatText, LogFormatJSON)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("invalid %s %d: must be positive", WorkersArg, c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%s must not be empty", ExtensionsArg)
	}
	return nil
}

// HasExtension reports whether path carries one of the configured
// extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// normalizeExtensions accepts comma or whitespace separated entries, as
// they arrive from environment variables, and gives each a leading dot.
func normalizeExtensions(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, ext := range strings.Split(entry, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			out = append(out, ext)
		}
	}
	return out
}
