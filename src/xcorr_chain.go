package stxc

// XCorrOps selects the post-processing applied to correlation values
// before they are reported or compared against the threshold.
type XCorrOps struct {
	Negate bool
	Abs    bool
}

// Apply negates first, then takes the magnitude, when enabled.
func (o XCorrOps) Apply(v int64) int64 {
	if o.Negate {
		v = -v
	}

	if o.Abs && v < 0 {
		v = -v
	}

	return v
}

/*
 * Output register chain behind the FIR network.
 *
 *	s0	registered r[0]
 *	s1	"xcorr", reported and the newest detector input
 *	s2	previous s1
 *	s3	previous s2
 *
 * All four shift together on a clock.
 */
type xcorrChain struct {
	s0, s1, s2, s3 int64
}

func (c *xcorrChain) clock(r0 int64) {
	c.s0, c.s1, c.s2, c.s3 = r0, c.s0, c.s1, c.s2
}

func (c *xcorrChain) reset() {
	*c = xcorrChain{}
}
