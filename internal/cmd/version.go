package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// The following variables are set at compile time via LDFLAGS.
var (
	// Version is the software version.
	Version = "dev"
	// GitHash is the git checksum of the most recent commit in HEAD.
	GitHash string
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			v := Version
			if GitHash != "" {
				v += "@" + GitHash
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kotlinlex %s compiled with %s on %s/%s\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
