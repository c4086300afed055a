package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, set via ldflags
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version and the
// version command. main calls it with values injected at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionTemplate() string {
	return fmt.Sprintf("graphlayout %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionTemplate())
		},
	}
}
