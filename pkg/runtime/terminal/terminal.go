package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/client"
	"github.com/de-tools/aims/pkg/client/transport"
	"github.com/de-tools/aims/pkg/runtime/terminal/commands"
	"github.com/de-tools/aims/pkg/runtime/terminal/export"
	"github.com/de-tools/aims/pkg/services/config"
)

const retryHint = "Something went wrong while talking to the governance API. Please try again."

// CLI represents the command-line interface
type CLI struct {
	opts    Options
	runtime *commands.Runtime
	logger  zerolog.Logger
	rootCmd *cobra.Command

	configPath string
	useMock    bool
	baseURL    string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
	Input     io.Reader
	// Credentials replaces the ini file named by the configuration.
	Credentials config.CredentialStore
	// ClientOptions are appended when the data-access client is built.
	ClientOptions []client.Option
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{
		opts:    opts,
		runtime: &commands.Runtime{Reporter: export.NewReporter(opts.Output)},
		logger:  newLogger(opts.ErrOutput, zerolog.WarnLevel),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the command line in args and returns the first error.
func (cli *CLI) Execute(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

// Run executes args and reports a failure on the error output. It returns
// the process exit code.
func (cli *CLI) Run(ctx context.Context, args []string) int {
	err := cli.Execute(ctx, args)
	if err == nil {
		return 0
	}

	cli.logger.Error().Err(err).Msg("command failed")

	message := err.Error()
	if apiErr, ok := transport.AsError(err); ok {
		message = apiErr.Message
	}
	fmt.Fprintf(cli.opts.ErrOutput, "Error: %s\n%s\n", message, retryHint)
	return 1
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "aims",
		Short:             "AI management system for ISO 42001 compliance",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.opts.Output)
	cmd.SetErr(cli.opts.ErrOutput)
	cmd.SetIn(cli.opts.Input)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.configPath, "config", "c", "", "Path to a config file (yaml, toml or ini)")
	flags.BoolVar(&cli.useMock, "mock", true, "Serve built-in sample data instead of calling the API")
	flags.StringVar(&cli.baseURL, "base-url", "", "Override the API base URL")
	flags.StringVar(&cli.logLevel, "log-level", zerolog.WarnLevel.String(), "Log level: debug, info, warn, error")

	rt := cli.runtime
	cmd.AddCommand(commands.NewDashboardCmd(rt))
	cmd.AddCommand(commands.NewSystemsCmd(rt))
	cmd.AddCommand(commands.NewPoliciesCmd(rt))
	cmd.AddCommand(commands.NewIncidentsCmd(rt))
	cmd.AddCommand(commands.NewRiskCmd(rt))
	cmd.AddCommand(commands.NewSummaryCmd(rt))
	cmd.AddCommand(commands.NewAuthCmd(rt))

	return cmd
}

// setup loads configuration and builds the client before any subcommand runs.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(cli.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cli.logLevel, err)
	}
	cli.logger = newLogger(cli.opts.ErrOutput, level)
	cmd.SetContext(cli.logger.WithContext(cmd.Context()))

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mock") {
		cfg.API.UseMockData = cli.useMock
	}
	if cli.baseURL != "" {
		cfg.API.BaseURL = cli.baseURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	creds := cli.opts.Credentials
	if creds == nil {
		creds, err = config.NewCredentialStore(cfg.API.Auth.CredentialsPath)
		if err != nil {
			return err
		}
	}

	clientOpts := append([]client.Option{client.WithCredentials(creds)}, cli.opts.ClientOptions...)

	cli.runtime.Config = *cfg
	cli.runtime.Creds = creds
	cli.runtime.Client = client.New(*cfg, clientOpts...)

	cli.logger.Debug().
		Bool("mock", cfg.API.UseMockData).
		Str("base_url", cfg.API.BaseURL).
		Msg("client configured")
	return nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
