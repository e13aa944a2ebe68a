package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"kotlinlex/internal/option"
)

func newConfigCmd(cfg *option.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Display merged configuration settings",
		Long:  "Display the settings merged from flags, environment and config file, as YAML.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bs, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to marshal config to YAML")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(bs))
			return err
		},
	})
	return configCmd
}
