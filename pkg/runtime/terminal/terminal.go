package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/project-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/project-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/project-atlas/pkg/services/config"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/de-tools/project-atlas/pkg/services/insights"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"github.com/de-tools/project-atlas/pkg/store/file"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	configPath string
	cfg        *config.Config
	logs       io.Writer
	reporter   *export.Reporter
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output     io.Writer
	Logs       io.Writer
	ConfigPath string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		configPath: opts.ConfigPath,
		logs:       opts.Logs,
		reporter:   export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the command tree with args, replacing os.Args.
func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Construction project dashboard metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cli.configPath)
			if err != nil {
				return err
			}
			cli.cfg = cfg

			logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logs, NoColor: true}).
				Level(cfg.LogLevel()).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", cli.configPath, "Path to the atlas config file")

	env := commands.Env{
		NewService: cli.newService,
		Reporter:   cli.reporter,
	}
	cmd.AddCommand(commands.NewProjectsCmd(env))
	cmd.AddCommand(commands.NewSummaryCmd(env))
	cmd.AddCommand(commands.NewInsightsCmd(env))
	cmd.AddCommand(commands.NewReportCmd(env))
	cmd.AddCommand(commands.NewAllocationCmd(env))
	cmd.AddCommand(commands.NewReassignCmd(env))
	cmd.AddCommand(commands.NewTransitionCmd(env))

	return cmd
}

// newService builds a read-only dashboard over a fixture directory.
func (cli *CLI) newService(_ context.Context, dir string) (*dashboard.Service, error) {
	cfg := cli.cfg
	if cfg == nil {
		return nil, eris.New("configuration is not loaded")
	}

	src, err := file.NewSource(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open fixtures at %s", dir)
	}

	return dashboard.NewService(
		dashboard.NewNormalizingSource(src),
		metrics.NewAggregator(cfg.Metrics),
		insights.NewDefaultEngine(cfg.Insights),
	), nil
}
