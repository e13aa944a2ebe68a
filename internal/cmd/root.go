// Package cmd implements the kotlinlex command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kotlinlex/internal/logging"
	"kotlinlex/internal/logging/hooks"
	"kotlinlex/internal/logging/logfields"
	"kotlinlex/internal/option"
)

// NewRootCmd builds the command tree over its own viper instance, so tests
// can create as many independent trees as they need.
func NewRootCmd() *cobra.Command {
	vp := option.NewViper()
	cfg := &option.Config{}

	root := &cobra.Command{
		Use:   "kotlinlex",
		Short: "Lexical analyser for Kotlin source files",
		Long: `kotlinlex tokenizes Kotlin source files, checks delimiter balance and
reports lexical diagnostics with source excerpts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(vp, cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.String(option.ConfigFileArg, "", "Config file (default is "+option.DefaultConfigName+".yaml in the working or home directory)")
	option.DefaultConfig.Flags(flags)
	if err := vp.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newLexCmd(cfg),
		newConfigCmd(cfg),
		newVersionCmd(),
	)
	return root
}

func loadConfig(vp *viper.Viper, cfg *option.Config) error {
	path := vp.GetString(option.ConfigFileArg)
	if err := option.ReadConfigFile(vp, path); err != nil {
		return err
	}

	c, err := option.Populate(vp)
	if err != nil {
		return err
	}
	*cfg = *c

	logging.SetupLogging(cfg.Debug, cfg.LogFormat)
	if cfg.LogFile != "" {
		logging.DefaultLogger.AddHook(hooks.NewFileRotationLogHook(logging.DefaultLogger.GetLevel(), cfg.LogFile))
	}
	color.NoColor = color.NoColor || !cfg.Color

	if used := vp.ConfigFileUsed(); used != "" {
		log.WithField(logfields.ConfigFile, used).Debug("Loaded config file")
	}
	return nil
}

// Execute runs the command line and exits non-zero on failure. SIGINT and
// SIGTERM cancel the run between files.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError reports err on w. ErrDiagnosticsReported stays silent, wrapped
// or not, since the report already shows the diagnostics.
func printError(w io.Writer, err error) {
	if errors.Is(err, ErrDiagnosticsReported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
