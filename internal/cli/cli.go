// Package cli implements the graphlayout command-line interface.
//
// The CLI is a thin wrapper around the layout engine: it reads an adjacency
// structure from a file, runs ForceAtlas2 and writes the coordinates as CSV
// or JSON. Engine parameters come from flags, optionally layered over a TOML
// file given with --config.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "graphlayout",
		Short:        "graphlayout computes force-directed 2-D graph layouts",
		Long:         `graphlayout places the nodes of a graph in the plane with the ForceAtlas2 algorithm, so that connected nodes end up close together and unconnected ones are pushed apart.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.versionCommand())
	return root
}
