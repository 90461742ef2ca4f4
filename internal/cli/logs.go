package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/carview/internal/app"
	"github.com/five82/carview/internal/logtail"
)

const (
	LogsCmdName  = "logs"
	LogsCmdShort = "Show the carview log file"
	LogsCmdLong  = `Print the last lines of the carview log file.

The TUI writes JSON log lines to its log file. They are shown formatted, and
colored when writing to a terminal. Use --raw for the JSON as written and
--follow to keep printing new lines until interrupted.`
)

const followInterval = 500 * time.Millisecond

type logsOptions struct {
	lines   int
	follow  bool
	raw     bool
	noColor bool
}

func newLogsCmd(v *viper.Viper, configPath *string) *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   LogsCmdName,
		Short: LogsCmdShort,
		Long:  LogsCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*configPath, v)
			if err != nil {
				return err
			}
			return showLogs(cmd, cfg.LogFile, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.lines, "lines", "n", 100, "number of lines to show, 0 for all")
	f.BoolVarP(&opts.follow, "follow", "f", false, "keep printing appended lines")
	f.BoolVar(&opts.raw, "raw", false, "print JSON lines unformatted")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	return cmd
}

func showLogs(cmd *cobra.Command, path string, opts logsOptions) error {
	out := cmd.OutOrStdout()
	emit := lineWriter(out, opts)

	lines, err := logtail.Read(path, opts.lines)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if lines == nil && !opts.follow {
		fmt.Fprintf(cmd.ErrOrStderr(), "no log entries at %s\n", path)
		return nil
	}
	for _, line := range lines {
		emit(line)
	}
	if !opts.follow {
		return nil
	}
	if err := logtail.Follow(cmd.Context(), path, followInterval, emit); err != nil {
		return fmt.Errorf("follow log: %w", err)
	}
	return nil
}

func lineWriter(out io.Writer, opts logsOptions) func(string) {
	if opts.raw {
		return func(line string) { fmt.Fprintln(out, line) }
	}
	formatter := logtail.Formatter{Color: !opts.noColor && isTerminal(out)}
	return func(line string) { fmt.Fprintln(out, formatter.Format(line)) }
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
