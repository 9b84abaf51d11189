package stxc

/*------------------------------------------------------------------
 *
 * Name:	st_xc_gen_sample
 *
 * Purpose:	Make a test waveform for st_xc_sim: a captured noise
 *		floor with a few positive SiPM-like pulses added.
 *
 * Description:	Noise is read as 14 bit samples in 16 bit little endian
 *		words.  It is moved so its mean sits at the requested
 *		baseline, then exponentially decaying pulses with a one
 *		tick rise are added.  Everything is clamped to 0 .. 16383.
 *
 *		Without a noise file the floor is flat.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/pflag"
)

type PulseOptions struct {
	Length       int
	Baseline     int
	PulseIndex   int
	Peak         int
	TauTicks     float64
	PulseLength  int
	NumPulses    int
	PulseSpacing int
}

func DefaultPulseOptions() PulseOptions {
	return PulseOptions{
		Length:       4096,
		Baseline:     4000,
		PulseIndex:   2000,
		Peak:         12,
		TauTicks:     55.0,
		PulseLength:  200,
		NumPulses:    3,
		PulseSpacing: 500,
	}
}

// ReadNoise14 reads up to n words and keeps the low 14 bits.
func ReadNoise14(r io.Reader, n int) ([]int, error) {
	var noise []int

	var br = bufio.NewReader(r)
	var word [2]byte

	for len(noise) < n {
		var _, err = io.ReadFull(br, word[:])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return noise, err
		}

		noise = append(noise, int(binary.LittleEndian.Uint16(word[:])&0x3FFF))
	}

	return noise, nil
}

// SipmPulse is round(peak * exp(-i/tau)) for i in 0 .. length-1.
func SipmPulse(length int, peak int, tau float64) []int {
	var pulse = make([]int, length)

	for i := range pulse {
		pulse[i] = int(math.RoundToEven(float64(peak) * math.Exp(-float64(i)/tau)))
	}

	return pulse
}

/*------------------------------------------------------------------
 *
 * Name:	GenerateWaveform
 *
 * Inputs:	noise	- Noise floor, already masked to 14 bits.
 *			  Only the first opts.Length are used.
 *
 * Returns:	Unsigned 14 bit samples.
 *
 *------------------------------------------------------------------*/

func GenerateWaveform(noise []int, opts PulseOptions) []int {
	if len(noise) > opts.Length {
		noise = noise[:opts.Length]
	}

	var wave = make([]int, len(noise))
	if len(noise) == 0 {
		return wave
	}

	var sum = 0
	for _, v := range noise {
		sum += v
	}
	var mean = float64(sum) / float64(len(noise))
	var shift = int(math.RoundToEven(float64(opts.Baseline) - mean))

	for i, v := range noise {
		wave[i] = ClampUnsigned14(int64(v + shift))
	}

	var pulse = SipmPulse(opts.PulseLength, opts.Peak, opts.TauTicks)

	for p := range opts.NumPulses {
		var base = opts.PulseIndex + p*opts.PulseSpacing
		for i, amp := range pulse {
			var idx = base + i
			if idx >= 0 && idx < len(wave) {
				wave[idx] = ClampUnsigned14(int64(wave[idx] + amp))
			}
		}
	}

	return wave
}

func WriteWaveformBin16(w io.Writer, wave []int) error {
	var bw = bufio.NewWriter(w)
	var word [2]byte

	for _, v := range wave {
		binary.LittleEndian.PutUint16(word[:], uint16(v)) //nolint:gosec
		if _, err := bw.Write(word[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func WriteWaveformText(w io.Writer, wave []int) error {
	var bw = bufio.NewWriter(w)

	for _, v := range wave {
		if _, err := fmt.Fprintf(bw, "%d\n", v); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeFile(path string, wave []int, write func(io.Writer, []int) error) error {
	var f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}

	if err := write(f, wave); err != nil {
		f.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// GenerateSampleFiles builds the waveform and writes both the binary and
// text forms of it.
func GenerateSampleFiles(noisePath, outBin, outTxt string, opts PulseOptions) ([]int, error) {
	var noise []int

	if noisePath == "" {
		noise = make([]int, opts.Length)
	} else {
		var f, err = os.Open(noisePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open noise file %s: %w", noisePath, err)
		}

		noise, err = ReadNoise14(f, opts.Length)
		f.Close() //nolint:errcheck,gosec
		if err != nil {
			return nil, fmt.Errorf("failed to read noise file %s: %w", noisePath, err)
		}
	}

	if len(noise) == 0 {
		return nil, fmt.Errorf("noise file %s: %w", noisePath, ErrNoSamples)
	}

	var wave = GenerateWaveform(noise, opts)

	if err := writeFile(outBin, wave, WriteWaveformBin16); err != nil {
		return nil, err
	}
	if err := writeFile(outTxt, wave, WriteWaveformText); err != nil {
		return nil, err
	}

	return wave, nil
}

func GenSampleMain() {
	var opts = DefaultPulseOptions()

	var noisePath = pflag.String("noise", "", "Noise .dat (uint16 LE with 14-bit samples).  Flat if omitted.")
	var outBin = pflag.String("out-bin", "data/input/sample_waveform.bin", "Output binary (uint16 LE).")
	var outTxt = pflag.String("out-txt", "data/input/sample_waveform.txt", "Output text (one sample per line).")
	pflag.IntVar(&opts.Length, "length", opts.Length, "Number of samples.")
	pflag.IntVar(&opts.Baseline, "baseline", opts.Baseline, "Baseline offset (0..16383).")
	pflag.IntVar(&opts.PulseIndex, "pulse-index", opts.PulseIndex, "Sample index where the first pulse starts.")
	pflag.IntVar(&opts.Peak, "peak", opts.Peak, "Pulse peak amplitude over baseline (ADC counts).")
	pflag.Float64Var(&opts.TauTicks, "tau-ticks", opts.TauTicks, "Decay time constant in ticks.")
	pflag.IntVar(&opts.PulseLength, "pulse-length", opts.PulseLength, "Pulse length in ticks.")
	pflag.IntVar(&opts.NumPulses, "num-pulses", opts.NumPulses, "Number of pulses to inject.")
	pflag.IntVar(&opts.PulseSpacing, "pulse-spacing", opts.PulseSpacing, "Spacing between pulses in ticks.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate a positive SiPM-like waveform from noise + pulses.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || pflag.NArg() > 0 {
		pflag.Usage()
		os.Exit(1)
	}

	var logger, _ = NewLogger(os.Stderr, "st_xc_gen_sample", LogOptions{}) //nolint:exhaustruct

	if opts.Length <= 0 || opts.PulseLength < 0 || opts.NumPulses < 0 || opts.TauTicks <= 0 {
		logger.Error("length and tau-ticks must be positive, pulse-length and num-pulses not negative")
		os.Exit(1)
	}

	var wave, err = GenerateSampleFiles(*noisePath, *outBin, *outTxt, opts)
	if err != nil {
		logger.Fatal("Generation failed", "err", err)
	}

	logger.Info("Wrote samples", "count", len(wave), "bin", *outBin, "txt", *outTxt)
	logger.Info("Suggested sim usage: st_xc_sim --input " + *outBin +
		" --input-bin16 --unsigned14 --unsigned14-no-center --out-prefix data/output/analysis/sample --threshold 2000")
}
