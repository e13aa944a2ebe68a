package cmd

import (
	"github.com/spf13/cobra"

	"kotlinlex/internal/option"
)

func newLexCmd(cfg *option.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lex [paths...]",
		Short: "Tokenize Kotlin files and report lexical diagnostics",
		Long: `Tokenize the given files, and every file with a configured extension
below the given directories. With no paths the working directory is used.

Lexical problems are reported, never fatal: every file is analysed to the
end. Use --fail-on-diagnostics to turn any diagnostic into a non-zero exit.`,
		Example: `  kotlinlex lex src/
  kotlinlex lex -o json Main.kt
  KOTLINLEX_WORKERS=2 kotlinlex lex --show-tokens=false .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runLex(cmd.Context(), cfg, args, cmd.OutOrStdout())
		},
	}
}
