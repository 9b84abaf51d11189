package stxc

/*------------------------------------------------------------------
 *
 * Name:	st_xc_sim
 *
 * Purpose:	Run a captured or generated waveform through the
 *		self-trigger cross-correlator model and log what the
 *		hardware would produce, cycle by cycle.
 *
 * Examples:	Text input, one sample per line, default template:
 *
 *			st_xc_sim --input wave.txt --threshold 2000
 *
 *		Raw 14 bit ADC capture with the baseline removed:
 *
 *			st_xc_sim --input wave.bin --input-bin16 --unsigned14 \
 *				--auto-baseline --xcorr-negate --threshold 2000 \
 *				--holdoff 256 --out-prefix runs/%Y%m%d-%H%M%S/wave
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func StXcSimMain() {
	var cfg = DefaultConfig()

	bindSimFlags(pflag.CommandLine, &cfg)

	var configFile = pflag.String("config", "", "YAML run file.  Command line options override it.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var quiet = pflag.BoolP("quiet", "q", false, "Only log warnings and errors.")
	var logFormat = pflag.String("log-format", "auto", "Log format: auto, text, logfmt or json.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Self-trigger cross-correlator reference model.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s --input <waveform> [options]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Writes <prefix>.csv, <prefix>_raw.txt, <prefix>_xcorr.txt and <prefix>_trigger.txt.\n")
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	var logger, logErr = NewLogger(os.Stderr, "st_xc_sim", LogOptions{Verbose: *verbose, Quiet: *quiet, Format: *logFormat})
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", logErr)
		pflag.Usage()
		os.Exit(1)
	}

	if pflag.NArg() > 0 {
		logger.Error("Unexpected arguments", "args", pflag.Args())
		pflag.Usage()
		os.Exit(1)
	}

	if *configFile != "" {
		if err := overlayConfigFile(pflag.CommandLine, *configFile, &cfg); err != nil {
			logger.Fatal("Bad config file", "err", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Bad options", "err", err)
		pflag.Usage()
		os.Exit(1)
	}

	if _, err := RunSimulation(cfg, time.Now(), logger); err != nil {
		logger.Fatal("Simulation failed", "err", err)
	}
}

// bindSimFlags ties the command line options to cfg, using its current
// values as defaults.
func bindSimFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Input, "input", "", "Input waveform.")
	fs.StringVar(&cfg.OutPrefix, "out-prefix", cfg.OutPrefix, "Output prefix.  strftime conversions such as %Y%m%d are expanded.")
	fs.StringVar(&cfg.TemplateFile, "template", "", "Template coefficients, one per line.  Default is the built in template.")
	fs.Int64Var(&cfg.Threshold, "threshold", cfg.Threshold, "Trigger threshold (signed).")
	fs.BoolVar(&cfg.Unsigned14, "unsigned14", false, "Treat input as unsigned 14-bit (0..16383).")
	fs.BoolVar(&cfg.NoCenter, "unsigned14-no-center", false, "Do not subtract 8192 when using --unsigned14.")
	fs.BoolVar(&cfg.InputBin16, "input-bin16", false, "Read input as 16-bit little-endian samples.")
	fs.IntVar(&cfg.BaselineSub, "baseline-sub", 0, "Subtract baseline before filtering.")
	fs.BoolVar(&cfg.AutoBaseline, "auto-baseline", false, "Compute mean of input and use as baseline-sub.")
	fs.BoolVar(&cfg.XCorrAbs, "xcorr-abs", false, "Use absolute value of xcorr for trigger/output.")
	fs.BoolVar(&cfg.XCorrNegate, "xcorr-negate", false, "Negate xcorr for trigger/output.")
	fs.IntVar(&cfg.Holdoff, "holdoff", 0, "Suppress triggers for N samples after a trigger.")
	fs.IntVar(&cfg.FrameLen, "frame-len", cfg.FrameLen, "Frame length in samples.")
	fs.IntVar(&cfg.Pretrigger, "pretrigger", cfg.Pretrigger, "Pretrigger samples.")
	fs.IntVar(&cfg.DataDelay, "data-delay", cfg.DataDelay, "Data delay in samples.")
	fs.IntVar(&cfg.ResetSamples, "reset-samples", 0, "Assert reset for the first N samples.")
	fs.BoolVar(&cfg.WriteFrames, "write-frames", false, "Also write <prefix>_frames.csv listing each frame.")
	fs.BoolVar(&cfg.LegacyCSV, "legacy-csv", false, "Write the short index,raw,xcorr,trigger CSV.")
}

// overlayConfigFile loads a run file into cfg, then puts back whatever
// was given explicitly on the command line.
func overlayConfigFile(fs *pflag.FlagSet, path string, cfg *Config) error {
	var given = map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		given[f.Name] = f.Value.String()
	})

	if err := ReadConfigFile(path, cfg); err != nil {
		return err
	}

	for name, value := range given {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("re-applying --%s: %w", name, err)
		}
	}

	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	RunSimulation
 *
 * Purpose:	One complete run: template, input, conditioning,
 *		simulation and output files.
 *
 * Inputs:	cfg	- Validated configuration.
 *
 *		start	- Run start time, for out-prefix expansion.
 *
 * Returns:	Counts for the run.  Any failure is returned before the
 *		first sample is simulated, except for write errors.
 *
 *------------------------------------------------------------------*/

func RunSimulation(cfg Config, start time.Time, logger *log.Logger) (Summary, error) {
	var summary Summary

	logger.Debug("Configuration",
		"input", cfg.Input, "bin16", cfg.InputBin16, "unsigned14", cfg.Unsigned14, "no_center", cfg.NoCenter,
		"threshold", cfg.Threshold, "xcorr_abs", cfg.XCorrAbs, "xcorr_negate", cfg.XCorrNegate,
		"holdoff", cfg.Holdoff, "frame_len", cfg.FrameLen, "pretrigger", cfg.Pretrigger,
		"data_delay", cfg.DataDelay, "reset_samples", cfg.ResetSamples)

	var tmpl, tmplErr = cfg.LoadTemplate()
	if tmplErr != nil {
		return summary, tmplErr
	}

	var samples, inErr = LoadWaveform(cfg.Input, cfg.InputBin16, cfg.Conditioner())
	if inErr != nil {
		return summary, inErr
	}

	var baseline = cfg.Baseline(samples)
	if cfg.AutoBaseline {
		logger.Info("Auto baseline", "baseline", baseline)
	}
	SubtractBaseline(samples, baseline)

	var prefix, prefixErr = ExpandOutPrefix(cfg.OutPrefix, start)
	if prefixErr != nil {
		return summary, prefixErr
	}

	var paths = OutputPathsFor(prefix, cfg.WriteFrames)

	var out, outErr = CreateOutputs(paths, cfg.LegacyCSV)
	if outErr != nil {
		return summary, outErr
	}

	var sim = NewSim(tmpl, cfg.Params())

	var runErr = sim.Run(samples, cfg.ResetSamples, func(rec Record) error {
		summary.Add(rec)
		return out.Write(rec)
	})

	var closeErr = out.Close()

	if runErr != nil {
		return summary, runErr
	}
	if closeErr != nil {
		return summary, closeErr
	}

	logger.Info("Simulation complete",
		"samples", summary.Samples, "triggers", summary.Triggers, "frames", summary.Frames, "csv", paths.CSV)

	return summary, nil
}
