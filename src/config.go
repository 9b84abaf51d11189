package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Run configuration for the simulator.
 *
 * Description:	Settings come from, in increasing priority:
 *
 *			built in defaults
 *			a YAML run file given with --config
 *			command line options
 *
 *		Example run file:
 *
 *			input: data/input/sample_waveform.bin
 *			input_bin16: true
 *			unsigned14: true
 *			auto_baseline: true
 *			threshold: 2000
 *			holdoff: 128
 *			template: [1, 0, 0, 0, ...]	# exactly 32
 *
 *------------------------------------------------------------------*/

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Input        string `yaml:"input"`
	OutPrefix    string `yaml:"out_prefix"`
	TemplateFile string `yaml:"template_file"`
	Template     []int  `yaml:"template"`

	Threshold    int64 `yaml:"threshold"`
	Unsigned14   bool  `yaml:"unsigned14"`
	NoCenter     bool  `yaml:"no_center"`
	InputBin16   bool  `yaml:"input_bin16"`
	BaselineSub  int   `yaml:"baseline_sub"`
	AutoBaseline bool  `yaml:"auto_baseline"`
	XCorrAbs     bool  `yaml:"xcorr_abs"`
	XCorrNegate  bool  `yaml:"xcorr_negate"`
	Holdoff      int   `yaml:"holdoff"`
	FrameLen     int   `yaml:"frame_len"`
	Pretrigger   int   `yaml:"pretrigger"`
	DataDelay    int   `yaml:"data_delay"`
	ResetSamples int   `yaml:"reset_samples"`

	WriteFrames bool `yaml:"write_frames"`
	LegacyCSV   bool `yaml:"legacy_csv"`
}

const DefaultOutPrefix = "data/output/analysis/out"

func DefaultConfig() Config {
	var p = DefaultParams()

	return Config{ //nolint:exhaustruct
		OutPrefix:  DefaultOutPrefix,
		FrameLen:   p.FrameLen,
		Pretrigger: p.Pretrigger,
		DataDelay:  p.DataDelay,
	}
}

// ReadConfigFile overlays a YAML run file onto cfg.  Unknown keys are an
// error so a misspelt option doesn't silently fall back to its default.
func ReadConfigFile(path string, cfg *Config) error {
	var data, err = os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	}

	var nonNegative = []struct {
		name  string
		value int
	}{
		{"holdoff", c.Holdoff},
		{"pretrigger", c.Pretrigger},
		{"data-delay", c.DataDelay},
		{"reset-samples", c.ResetSamples},
	}
	for _, opt := range nonNegative {
		if opt.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, not %d", ErrInvalidConfig, opt.name, opt.value)
		}
	}

	if c.FrameLen <= 0 {
		return fmt.Errorf("%w: frame-len must be positive, not %d", ErrInvalidConfig, c.FrameLen)
	}

	if c.TemplateFile != "" && len(c.Template) > 0 {
		return fmt.Errorf("%w: give either a template file or an inline template, not both", ErrInvalidConfig)
	}

	if len(c.Template) > 0 && len(c.Template) != NumTaps {
		return fmt.Errorf("%w: inline %w, got %d", ErrInvalidConfig, ErrTemplateLength, len(c.Template))
	}

	return nil
}

// LoadTemplate resolves which template the run uses.
func (c *Config) LoadTemplate() (Template, error) {
	switch {
	case c.TemplateFile != "":
		return LoadTemplate(c.TemplateFile)
	case len(c.Template) > 0:
		return TemplateFromSlice(c.Template)
	default:
		return DefaultTemplate, nil
	}
}

func (c *Config) Conditioner() Conditioner {
	return Conditioner{Unsigned14: c.Unsigned14, NoCenter: c.NoCenter}
}

func (c *Config) Params() Params {
	return Params{
		Threshold:  c.Threshold,
		Ops:        XCorrOps{Negate: c.XCorrNegate, Abs: c.XCorrAbs},
		Holdoff:    c.Holdoff,
		FrameLen:   c.FrameLen,
		Pretrigger: c.Pretrigger,
		DataDelay:  c.DataDelay,
	}
}

// Baseline is the value to take off every sample.  Auto baseline wins
// over an explicit one.
func (c *Config) Baseline(samples []int) int {
	if c.AutoBaseline {
		return ComputeBaseline(samples)
	}

	return c.BaselineSub
}

// ExpandOutPrefix fills in strftime style conversions, e.g.
// "runs/%Y%m%d-%H%M%S/out".
func ExpandOutPrefix(prefix string, t time.Time) (string, error) {
	var expanded, err = strftime.Format(prefix, t)
	if err != nil {
		return "", fmt.Errorf("%w: out-prefix %q: %w", ErrInvalidConfig, prefix, err)
	}

	return expanded, nil
}
