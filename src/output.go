package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Write the per-sample outputs of a run.
 *
 * Description:	For an output prefix P:
 *
 *		P.csv		One row per sample with every output.
 *		P_raw.txt	Conditioned sample, one per line.
 *		P_xcorr.txt	Processed correlation, one per line.
 *		P_trigger.txt	Trigger, 0 or 1, one per line.
 *		P_frames.csv	Optional, one row per frame.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"index", "raw", "raw_delayed", "xcorr", "xcorr_proc", "trigger",
	"frame_start", "frame_active", "frame_index", "frame_id", "frame_trigger",
}

var legacyCSVHeader = []string{"index", "raw", "xcorr", "trigger"}

var framesCSVHeader = []string{"frame_id", "start_index", "trigger_index", "end_index"}

type OutputPaths struct {
	CSV     string
	Raw     string
	XCorr   string
	Trigger string
	Frames  string // Empty when not wanted.
}

func OutputPathsFor(prefix string, frames bool) OutputPaths {
	var p = OutputPaths{
		CSV:     prefix + ".csv",
		Raw:     prefix + "_raw.txt",
		XCorr:   prefix + "_xcorr.txt",
		Trigger: prefix + "_trigger.txt",
		Frames:  "",
	}

	if frames {
		p.Frames = prefix + "_frames.csv"
	}

	return p
}

func (p OutputPaths) all() []string {
	var paths = []string{p.CSV, p.Raw, p.XCorr, p.Trigger}
	if p.Frames != "" {
		paths = append(paths, p.Frames)
	}

	return paths
}

func b2s(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FrameSpan is one frame as seen in the output records.
type FrameSpan struct {
	ID           int
	StartIndex   int64
	TriggerIndex int64 // -1 when the pretrigger marker never fired.
	EndIndex     int64
}

// frameTracker rebuilds frame spans from the record stream.
type frameTracker struct {
	open bool
	cur  FrameSpan
}

// add returns a span when rec shows the previous frame has finished.
func (ft *frameTracker) add(rec Record) (FrameSpan, bool) {
	var done FrameSpan
	var finished = false

	if ft.open && (!rec.FrameActive || rec.FrameStart) {
		done = ft.cur
		finished = true
		ft.open = false
	}

	if rec.FrameStart {
		ft.open = true
		ft.cur = FrameSpan{ID: rec.FrameID, StartIndex: rec.Index, TriggerIndex: -1, EndIndex: rec.Index}
	}

	if ft.open {
		ft.cur.EndIndex = rec.Index
		if rec.FrameTrigger {
			ft.cur.TriggerIndex = rec.Index
		}
	}

	return done, finished
}

// flush hands back a frame still open at the end of the input.
func (ft *frameTracker) flush() (FrameSpan, bool) {
	if !ft.open {
		return FrameSpan{}, false //nolint:exhaustruct
	}

	ft.open = false

	return ft.cur, true
}

// OutputWriter fans records out to the output files.
type OutputWriter struct {
	paths  OutputPaths
	legacy bool

	files []*os.File

	csv     *csv.Writer
	raw     *bufio.Writer
	xcorr   *bufio.Writer
	trigger *bufio.Writer
	frames  *csv.Writer

	tracker frameTracker
}

/*------------------------------------------------------------------
 *
 * Name:	CreateOutputs
 *
 * Purpose:	Create all output files and write the CSV headers.
 *
 * Inputs:	paths	- From OutputPathsFor.  Missing parent
 *			  directories are created.
 *
 *		legacy	- Write the short index,raw,xcorr,trigger CSV.
 *
 *------------------------------------------------------------------*/

func CreateOutputs(paths OutputPaths, legacy bool) (*OutputWriter, error) {
	var w = &OutputWriter{paths: paths, legacy: legacy} //nolint:exhaustruct

	var opened []*os.File
	for _, path := range paths.all() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			closeAll(opened)
			return nil, fmt.Errorf("failed to create output directory for %s: %w", path, err)
		}

		var f, err = os.Create(path)
		if err != nil {
			closeAll(opened)
			return nil, fmt.Errorf("failed to open output file %s: %w", path, err)
		}

		opened = append(opened, f)
	}

	w.files = opened
	w.csv = csv.NewWriter(opened[0])
	w.raw = bufio.NewWriter(opened[1])
	w.xcorr = bufio.NewWriter(opened[2])
	w.trigger = bufio.NewWriter(opened[3])

	var header = csvHeader
	if legacy {
		header = legacyCSVHeader
	}

	if err := w.csv.Write(header); err != nil {
		closeAll(opened)
		return nil, fmt.Errorf("failed to write %s: %w", paths.CSV, err)
	}

	if paths.Frames != "" {
		w.frames = csv.NewWriter(opened[4])
		if err := w.frames.Write(framesCSVHeader); err != nil {
			closeAll(opened)
			return nil, fmt.Errorf("failed to write %s: %w", paths.Frames, err)
		}
	}

	return w, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close() //nolint:errcheck,gosec
	}
}

func (w *OutputWriter) Write(rec Record) error {
	var row []string
	if w.legacy {
		row = []string{
			strconv.FormatInt(rec.Index, 10),
			strconv.Itoa(rec.Raw),
			strconv.FormatInt(rec.XCorrRaw, 10),
			b2s(rec.Trigger),
		}
	} else {
		row = []string{
			strconv.FormatInt(rec.Index, 10),
			strconv.Itoa(rec.Raw),
			strconv.Itoa(rec.RawDelayed),
			strconv.FormatInt(rec.XCorrRaw, 10),
			strconv.FormatInt(rec.XCorrProc, 10),
			b2s(rec.Trigger),
			b2s(rec.FrameStart),
			b2s(rec.FrameActive),
			strconv.Itoa(rec.FrameIndex),
			strconv.Itoa(rec.FrameID),
			b2s(rec.FrameTrigger),
		}
	}

	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.paths.CSV, err)
	}

	if _, err := fmt.Fprintf(w.raw, "%d\n", rec.Raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.paths.Raw, err)
	}

	if _, err := fmt.Fprintf(w.xcorr, "%d\n", rec.XCorrProc); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.paths.XCorr, err)
	}

	if _, err := fmt.Fprintf(w.trigger, "%s\n", b2s(rec.Trigger)); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.paths.Trigger, err)
	}

	if w.frames != nil {
		if span, ok := w.tracker.add(rec); ok {
			return w.writeFrame(span)
		}
	}

	return nil
}

func (w *OutputWriter) writeFrame(span FrameSpan) error {
	var err = w.frames.Write([]string{
		strconv.Itoa(span.ID),
		strconv.FormatInt(span.StartIndex, 10),
		strconv.FormatInt(span.TriggerIndex, 10),
		strconv.FormatInt(span.EndIndex, 10),
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", w.paths.Frames, err)
	}

	return nil
}

// Close flushes everything and closes the files.  The first error wins
// but every file is still closed.
func (w *OutputWriter) Close() error {
	var errs []error

	if w.frames != nil {
		if span, ok := w.tracker.flush(); ok {
			errs = append(errs, w.writeFrame(span))
		}
		w.frames.Flush()
		errs = append(errs, w.frames.Error())
	}

	w.csv.Flush()
	errs = append(errs, w.csv.Error())
	errs = append(errs, w.raw.Flush(), w.xcorr.Flush(), w.trigger.Flush())

	for _, f := range w.files {
		errs = append(errs, f.Close())
	}

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
	}

	return nil
}

// Summary counts what happened during a run.
type Summary struct {
	Samples  int
	Triggers int
	Frames   int
}

func (s *Summary) Add(rec Record) {
	s.Samples++
	if rec.Trigger {
		s.Triggers++
	}
	if rec.FrameStart {
		s.Frames++
	}
}
