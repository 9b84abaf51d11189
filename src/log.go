package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Diagnostic logging for the command line tools.
 *
 * Description:	Messages go to stderr so they never mix with data.
 *		The text format is meant for people at a terminal, logfmt
 *		and JSON for when a script is collecting the output.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

type LogOptions struct {
	Verbose bool
	Quiet   bool
	Format  string // auto, text, logfmt or json
}

// NewLogger builds the logger for one tool invocation.
func NewLogger(w io.Writer, prefix string, opts LogOptions) (*log.Logger, error) {
	var formatter log.Formatter

	switch opts.Format {
	case "", "auto":
		formatter = log.LogfmtFormatter
		if isTerminal(w) {
			formatter = log.TextFormatter
		}
	case "text":
		formatter = log.TextFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("%w: log-format must be auto, text, logfmt or json, not %q", ErrInvalidConfig, opts.Format)
	}

	var level = log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}
	if opts.Quiet {
		level = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{ //nolint:exhaustruct
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Formatter:       formatter,
	}), nil
}

func isTerminal(w io.Writer) bool {
	var f, ok = w.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}
