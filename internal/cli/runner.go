package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"XRPVanity/internal/generator"
	"XRPVanity/internal/ops/inspect"
	"XRPVanity/internal/patterns"
	"XRPVanity/pkg/appcfg"
	"XRPVanity/pkg/i18n"
	"XRPVanity/pkg/logx"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultConfigPath = "configs/app.yaml"

// errReported wraps an error whose diagnostic was already written.
type errReported struct{ err error }

func (e *errReported) Error() string { return e.err.Error() }
func (e *errReported) Unwrap() error { return e.err }

var errUsage = errors.New("wrong number of arguments")

// Runner holds the process streams and settings shared by all commands.
type Runner struct {
	Out io.Writer // match and status lines
	Err io.Writer // logs and diagnostics

	// Search overrides, used by tests.
	Rand          io.Reader
	MaxIterations uint64

	cfg  *appcfg.Config
	msg  i18n.Messages
	root *cobra.Command

	configPath string
	logLevel   string
	status     string
	color      bool
}

func NewRunner(out, errOut io.Writer) *Runner {
	r := &Runner{Out: out, Err: errOut}
	r.root = r.newRootCommand()
	return r
}

// Execute runs the command line and returns the process exit code.
func (r *Runner) Execute(ctx context.Context, args []string) int {
	r.root.SetArgs(args)
	r.root.SetOut(r.Out)
	r.root.SetErr(r.Err)
	defer logx.Close()

	if err := r.root.ExecuteContext(ctx); err != nil {
		var rep *errReported
		if !errors.As(err, &rep) {
			fmt.Fprintf(r.Err, "%s: %v\n", r.root.Name(), err)
		}
		return 1
	}
	return 0
}

func (r *Runner) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "xrpvanity <threads> <prefix>",
		Short:             "search for XRP account addresses starting with a prefix",
		Version:           fmt.Sprintf("%s (%s)", version, commit),
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
		RunE:              r.search,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&r.configPath, "config", defaultConfigPath, "path to the app config")
	pf.StringVar(&r.logLevel, "log-level", "", "log level override: debug|info|warn|error")
	root.Flags().StringVar(&r.status, "status", "", "rate line: auto|always|never")
	root.Flags().BoolVar(&r.color, "color", false, "highlight addresses in match lines")

	root.AddCommand(&cobra.Command{
		Use:   "inspect <familySeed>",
		Short: "decode a family seed and print the address it controls",
		Args:  cobra.ExactArgs(1),
		RunE:  r.inspect,
	})
	return root
}

// setup loads the config, applies flag overrides and starts the logger.
func (r *Runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := appcfg.Load(r.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(r.Err, i18n.Get(appcfg.Default().Language).ConfigFallback, err)
		cfg = appcfg.Default()
	case err != nil:
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = r.logLevel
	}
	if flags.Changed("status") {
		cfg.Status = r.status
	}
	if flags.Changed("color") {
		cfg.Color = r.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logx.Init(logx.Config{
		Level:       cfg.LogLevel,
		FilePath:    cfg.LogFile,
		HideSecrets: cfg.HideSecretsInConsole,
		Console:     r.Err,
	}); err != nil {
		return fmt.Errorf("log init: %w", err)
	}
	r.cfg = cfg
	r.msg = i18n.Get(cfg.Language)

	logx.S().Debugw("config loaded",
		"path", r.configPath,
		"lang", cfg.Language,
		"log_level", cfg.LogLevel,
		"status", cfg.Status,
		"hide_secrets_in_console", cfg.HideSecretsInConsole,
	)
	return nil
}

func (r *Runner) search(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		fmt.Fprintf(r.Err, r.msg.Usage, r.root.Name())
		return &errReported{errUsage}
	}

	threads, err := strconv.Atoi(args[0])
	if err != nil || threads <= 0 {
		fmt.Fprintf(r.Err, r.msg.BadThreads, args[0])
		return &errReported{fmt.Errorf("%w: threads %q", generator.ErrConfig, args[0])}
	}

	prefix := patterns.Normalize(args[1])
	if err := patterns.Validate(prefix); err != nil {
		var ice *patterns.InvalidCharError
		if errors.As(err, &ice) {
			fmt.Fprintf(r.Err, r.msg.ImpossiblePattern, ice.Char)
		}
		return &errReported{fmt.Errorf("%w: %w", generator.ErrConfig, err)}
	}

	console := generator.NewConsole(r.Out, generator.ConsoleOptions{
		Status: r.cfg.Status,
		Color:  r.cfg.Color,
	})
	console.Println(r.msg.AppTitle)
	console.Printf(r.msg.SearchingPrefix, prefix, threads)

	opts := []generator.Option{generator.WithConsole(console)}
	if r.Rand != nil {
		opts = append(opts, generator.WithRand(r.Rand))
	}

	ctx, stop := withInterrupt(cmd.Context())
	defer stop()

	err = generator.Run(ctx, generator.Options{
		Workers:        threads,
		Prefix:         prefix,
		ReportInterval: r.cfg.ReportInterval,
		MaxIterations:  r.MaxIterations,
	}, opts...)
	if err != nil {
		fmt.Fprintf(r.Err, r.msg.SearchFailed, err)
		return &errReported{err}
	}
	return nil
}

func (r *Runner) inspect(cmd *cobra.Command, args []string) error {
	res, err := inspect.Inspect(args[0], nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), r.msg.InspectAddress, res.Address)
	return nil
}

// withInterrupt cancels on SIGINT or SIGTERM.
func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
