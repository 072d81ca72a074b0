package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/ntime/internal/config"
	"github.com/harrison/ntime/internal/logger"
	"github.com/harrison/ntime/internal/report"
	"github.com/harrison/ntime/internal/timer"
)

// Version is injected at build time via -ldflags
var Version = "1.0.0"

// errUsage marks a usage error whose message has already been printed.
var errUsage = errors.New("usage error")

// runner is the part of timer.Timer the command depends on.
type runner interface {
	Run(program string, args []string, suppress bool) (*timer.Result, error)
}

// newRunner builds the timer for one invocation. The child inherits the
// command's output streams when they are files.
var newRunner = func(log timer.Logger, stdout, stderr io.Writer) runner {
	t := timer.New(log)
	if f, ok := stdout.(*os.File); ok {
		t.Stdout = f
	}
	if f, ok := stderr.(*os.File); ok {
		t.Stderr = f
	}
	return t
}

// NewRootCommand creates and returns the root cobra command for ntime
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ntime [flags] <program> [program-args...]",
		Short: "Precise wall-clock timer for a single program",
		Long: `ntime runs a program, waits for it to exit, and reports how long it took
in nanoseconds, measured with the monotonic clock.

Everything after <program> is passed to the program unchanged.

Examples:
  ntime sleep 1              # coloured result line
  ntime -n make              # plain result line
  ntime -d -s ./bench        # only the number, program output hidden
  ntime --format yaml -o runs.yaml -a ./bench   # append a YAML record`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	// Flags after the program name belong to the program.
	flags.SetInterspersed(false)

	flags.BoolP("no-color", "n", false, "Disable coloured output")
	flags.BoolP("version", "v", false, "Print version and exit")
	flags.BoolP("silent", "s", false, "Suppress the program's stdout and stderr")
	flags.BoolP("digits", "d", false, "Print only the elapsed nanoseconds (implies -n)")
	flags.String("format", string(config.FormatText), "Output format: text or yaml")
	flags.StringP("output", "o", "", "Write the result to this file instead of stdout")
	flags.BoolP("append", "a", false, "Append to the --output file instead of replacing it")
	flags.String("log-level", "warn", "Diagnostic verbosity on stderr (trace, debug, info, warn, error)")

	return cmd
}

// Execute runs the root command with the process arguments and returns the
// exit code: 0 on success, 1 on any failure.
func Execute() int {
	cmd := NewRootCommand()
	return exitCode(cmd, cmd.Execute())
}

// exitCode maps a command error to a process exit code, printing it unless
// it was already reported.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errUsage) {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
	}
	return 1
}

// runCommand implements the root command logic
func runCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
		fmt.Fprintf(out, "%s - version %s\n", cmd.Name(), Version)
		return nil
	}

	cfg, err := configFromFlags(cmd, args)
	if err != nil {
		if errors.Is(err, config.ErrNoProgram) {
			printUsage(cmd, cfg.Colorize)
			return errUsage
		}
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	t := newRunner(log, out, cmd.ErrOrStderr())

	res, err := t.Run(cfg.Program, cfg.Args, cfg.SuppressChildOutput)
	if err != nil {
		return err
	}

	data, err := report.NewFormatter(cfg).Format(res)
	if err != nil {
		return err
	}
	if err := report.NewSink(out, cfg.OutputPath, cfg.Append).Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// configFromFlags folds the parsed flags and positional arguments into a
// validated RunConfig. The returned config is usable for rendering usage
// even when validation fails.
func configFromFlags(cmd *cobra.Command, args []string) (config.RunConfig, error) {
	flags := cmd.Flags()
	cfg := config.DefaultConfig()

	noColor, _ := flags.GetBool("no-color")
	cfg.Colorize = !noColor
	cfg.SuppressChildOutput, _ = flags.GetBool("silent")
	cfg.NumericOnly, _ = flags.GetBool("digits")
	cfg.OutputPath, _ = flags.GetString("output")
	cfg.Append, _ = flags.GetBool("append")
	cfg.LogLevel, _ = flags.GetString("log-level")

	formatStr, _ := flags.GetString("format")
	format, err := config.ParseFormat(formatStr)
	if err != nil {
		return cfg, err
	}
	cfg.Format = format

	if len(args) > 0 {
		cfg = cfg.WithTarget(args[0], args)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// printUsage writes the bare-invocation help: usage, flags, the accuracy
// notice and the missing-program error.
func printUsage(cmd *cobra.Command, colorize bool) {
	out := cmd.OutOrStdout()
	name := cmd.Name()

	bold := color.New(color.Bold)
	if colorize {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	fmt.Fprintf(out, "%s - precise time program\n", name)
	fmt.Fprintf(out, "Invocation: %s [flags] <program> <args for program>\n", name)
	fmt.Fprintf(out, "Arguments for %s:\n%s", name, cmd.Flags().FlagUsages())
	fmt.Fprintf(out, "\nNOTICE: Times are %s! As this is a very accurate timer, it measures the overhead "+
		"time of its own execution, as well as any work done by the kernel.\n", bold.Sprint("approximate"))
	fmt.Fprintf(out, "What this means is that the times are likely to vary heavily and should probably "+
		"be averaged versus used as-is as a benchmark.\n")
	fmt.Fprintf(out, "\nError: no program specified, terminating.\n")
}
