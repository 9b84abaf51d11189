package stxc

import (
	"os"

	"github.com/spf13/pflag"
	"pgregory.net/rapid"
)

// pflag assumes it only ever gets parsed once per process, so every
// command line test starts from a fresh CommandLine.
func setupPflag(args []string) {
	os.Args = args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}

func runAll(tmpl Template, p Params, samples []int, resetSamples int) []Record {
	var sim = NewSim(tmpl, p)
	var recs []Record

	_ = sim.Run(samples, resetSamples, func(rec Record) error {
		recs = append(recs, rec)
		return nil
	})

	return recs
}

func sampleAt(samples []int, i int) int64 {
	if i < 0 || i >= len(samples) {
		return 0
	}
	return int64(samples[i])
}

// expectedXCorr is the reported xcorr worked out directly from the input:
// tap k sees lag 3k+2 at r[0], plus two registers in the output chain.
func expectedXCorr(tmpl Template, samples []int) []int64 {
	var want = make([]int64, len(samples))

	for u := range samples {
		for k := range NumTaps {
			want[u] += int64(tmpl[k]) * sampleAt(samples, u-3*k-4)
		}
	}

	return want
}

// singleTap has one unit coefficient and zeros everywhere else.
func singleTap(k int) Template {
	var t Template
	t[k] = 1
	return t
}

func pulse(n int, at map[int]int) []int {
	var s = make([]int, n)
	for i, v := range at {
		s[i] = v
	}
	return s
}

func drawTemplate(t *rapid.T) Template {
	var coeff = rapid.SliceOfN(rapid.IntRange(-3, 3), NumTaps, NumTaps).Draw(t, "template")

	var tmpl Template
	copy(tmpl[:], coeff)

	return tmpl
}

func drawSamples(t *rapid.T) []int {
	return rapid.SliceOfN(rapid.IntRange(-20, 20), 0, 400).Draw(t, "samples")
}

func drawParams(t *rapid.T) Params {
	return Params{
		Threshold: rapid.Int64Range(-40, 40).Draw(t, "threshold"),
		Ops: XCorrOps{
			Negate: rapid.Bool().Draw(t, "negate"),
			Abs:    rapid.Bool().Draw(t, "abs"),
		},
		Holdoff:    rapid.IntRange(0, 20).Draw(t, "holdoff"),
		FrameLen:   rapid.IntRange(1, 40).Draw(t, "frameLen"),
		Pretrigger: rapid.IntRange(0, 45).Draw(t, "pretrigger"),
		DataDelay:  rapid.IntRange(0, 40).Draw(t, "dataDelay"),
	}
}
