package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logictree/pkg/buildinfo"
)

// Execute runs the logictree CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (render,
// serve), configures logging based on the --verbose flag, and executes the
// command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "logictree",
		Short:        "logictree renders flowcharts and decision diagrams",
		Long:         `logictree is a CLI tool for rendering logic trees (flowcharts, decision trees, analysis pipelines) described in TOML documents, with explicitly placed boxes and arrow connections.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate("logictree " + buildinfo.String() + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
