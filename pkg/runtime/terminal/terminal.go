package terminal

import (
	"io"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts     Options
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Service   revenue.Service
	Formatter locale.Formatter
	Defaults  config.ReportConfig
	Clock     analytics.Clock
	Output    io.Writer
	UseColors bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Formatter == nil {
		opts.Formatter = locale.NewUSFormatter()
	}

	cli := &CLI{
		opts:     opts,
		reporter: export.NewReporter(opts.Output, opts.UseColors),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args[1:], mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "revenue",
		Short:         "Revenue analytics tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.opts.Output)

	d := cli.opts.Defaults
	cmd.AddCommand(commands.NewImportCmd(cli.opts.Service))
	cmd.AddCommand(commands.NewReportCmd(cli.opts.Service, cli.opts.Formatter, cli.reporter, d))
	cmd.AddCommand(commands.NewForecastCmd(cli.reporter, d.Horizon))
	cmd.AddCommand(commands.NewRangeCmd(cli.opts.Clock, cli.opts.Formatter, cli.reporter, d.Period))

	return cmd
}
