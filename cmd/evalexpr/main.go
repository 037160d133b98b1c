package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// options holds the values of command line flags.
type options struct {
	config   string
	in       string
	prec     uint
	format   string
	group    bool
	echo     bool
	strict   bool
	maxDepth int
	jobs     int
	watch    bool
	color    string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "evalexpr [flags] [expression ...]",
		Short: "Evaluate arithmetic expressions",
		Long: `evalexpr evaluates arithmetic expressions over + - * / ^ and parentheses.

Each argument is one expression. With no arguments, each non-blank line of
--in (or standard input) is one expression. If standard input is a terminal
and no input is given, evalexpr reads expressions interactively.

Use -- before expressions that begin with a minus sign.

The exit status is 1 if any expression fails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}
	def := DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", defaultConfigPath(), "YAML configuration file")
	f.StringVar(&opts.in, "in", "", `input file, one expression per line ("-" for stdin)`)
	f.UintVarP(&opts.prec, "prec", "p", def.Precision, "precision of calculations in bits")
	f.StringVar(&opts.format, "fmt", def.Format, "result formatting verb")
	f.BoolVar(&opts.group, "group", def.Group, "separate thousands in results")
	f.BoolVar(&opts.echo, "echo", false, "print parse trees")
	f.BoolVar(&opts.strict, "strict", def.Strict, "disable unary + and -")
	f.IntVar(&opts.maxDepth, "max-depth", def.MaxDepth, "maximum nesting depth of expressions")
	f.IntVarP(&opts.jobs, "jobs", "j", def.Jobs, "number of expressions to evaluate concurrently")
	f.BoolVar(&opts.watch, "watch", false, "evaluate --in again whenever it changes")
	f.StringVar(&opts.color, "color", def.Color, "colorize diagnostics: auto, always, or never")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, or error")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(opts.config, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	cfg = cfg.Override(cmd.Flags(), opts)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	logger.Debug("configuration", "file", opts.config, "precision", cfg.Precision, "jobs", cfg.Jobs)

	a := &app{
		cfg:    cfg,
		p:      newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts.echo),
		ev:     newEvaluator(cfg),
		logger: logger,
	}
	ctx := cmd.Context()
	switch {
	case len(args) > 0:
		if opts.watch || opts.in != "" {
			return errors.New("expressions given as arguments cannot be combined with --in or --watch")
		}
		return a.runLines(ctx, argLines(args))
	case opts.watch:
		if opts.in == "" || opts.in == "-" {
			return errors.New("--watch requires an --in file")
		}
		return a.watch(ctx, opts.in)
	case opts.in != "" && opts.in != "-":
		return a.runFile(ctx, opts.in)
	}
	in := cmd.InOrStdin()
	if opts.in == "" {
		if f, ok := in.(*os.File); ok && isTerminal(f) {
			return a.interactive(ctx, f, cmd.OutOrStdout())
		}
	}
	return a.runReader(ctx, in)
}

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Failed expressions have already been reported.
		var failed *batchError
		if !errors.As(err, &failed) {
			log.Print(err)
		}
		os.Exit(1)
	}
}
