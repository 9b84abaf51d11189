package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Cycle accurate model of the st_xc self-trigger pipeline:
 *
 *			sample -> systolic FIR -> xcorr register chain
 *			       -> edge/holdoff trigger -> frame state machine
 *
 *		plus a raw sample delay line used to line the raw data
 *		up with the processed outputs.
 *
 * Description:	One Sim models one run.  It starts with every register
 *		cleared and is only changed by Step.  Outputs of a step are
 *		what the hardware shows during that cycle, i.e. computed
 *		from the registers before the clock edge.  The clock edge
 *		(or the synchronous reset) is applied afterwards.
 *
 *------------------------------------------------------------------*/

// Params are the per-run knobs of the pipeline.
type Params struct {
	Threshold  int64
	Ops        XCorrOps
	Holdoff    int
	FrameLen   int
	Pretrigger int
	DataDelay  int
}

// DefaultParams match the firmware defaults.
func DefaultParams() Params {
	return Params{ //nolint:exhaustruct
		FrameLen:   1024,
		Pretrigger: 64,
		DataDelay:  256,
	}
}

// Record is everything the pipeline exposes for one input sample.
type Record struct {
	Index        int64
	Raw          int
	RawDelayed   int
	XCorrRaw     int64
	XCorrProc    int64
	Trigger      bool
	FrameStart   bool
	FrameActive  bool
	FrameIndex   int
	FrameID      int
	FrameTrigger bool
}

type Sim struct {
	params Params

	fir   firNetwork
	chain xcorrChain
	trig  triggerDetector
	frame frameMachine
	delay *delayLine

	index int64
}

func NewSim(tmpl Template, p Params) *Sim {
	return &Sim{
		params: p,
		fir:    newFirNetwork(tmpl),
		chain:  xcorrChain{}, //nolint:exhaustruct
		trig:   newTriggerDetector(p.Threshold, p.Holdoff, p.Ops),
		frame:  newFrameMachine(p.FrameLen, p.Pretrigger),
		delay:  newDelayLine(p.DataDelay),
		index:  0,
	}
}

/*------------------------------------------------------------------
 *
 * Name:	Step
 *
 * Purpose:	Run one clock cycle.
 *
 * Inputs:	sample	- Conditioned sample.
 *
 *		reset	- Synchronous reset asserted for this cycle.
 *
 * Returns:	Outputs for this cycle.
 *
 * Description:	The trigger is evaluated from the pre-clock registers even
 *		while reset is asserted; the reset then clears everything,
 *		holdoff included.  The frame machine is held in reset, so
 *		its outputs read as zero for the cycle.
 *
 *------------------------------------------------------------------*/

func (s *Sim) Step(sample int, reset bool) Record {
	var rec = Record{ //nolint:exhaustruct
		Index:     s.index,
		Raw:       sample,
		XCorrRaw:  s.chain.s1,
		XCorrProc: s.params.Ops.Apply(s.chain.s1),
	}
	s.index++

	rec.Trigger = s.trig.evaluate(s.chain.s1, s.chain.s2, s.chain.s3)

	if reset {
		s.frame.reset()
	} else {
		var f = s.frame.clock(rec.Trigger)
		rec.FrameStart = f.start
		rec.FrameActive = f.active
		rec.FrameIndex = f.index
		rec.FrameID = f.id
		rec.FrameTrigger = f.trigger
	}

	rec.RawDelayed = s.delay.shift(sample)

	if reset {
		s.fir.reset()
		s.chain.reset()
		s.trig.reset()
		s.delay.reset()

		return rec
	}

	s.fir.clock(sample)
	s.chain.clock(s.fir.out())

	return rec
}

// Run feeds samples through s in order, asserting reset for the first
// resetSamples of them, and hands each record to emit.
func (s *Sim) Run(samples []int, resetSamples int, emit func(Record) error) error {
	for i, v := range samples {
		var rec = s.Step(v, i < resetSamples)

		if err := emit(rec); err != nil {
			return err
		}
	}

	return nil
}
