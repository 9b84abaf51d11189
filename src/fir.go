package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Systolic (transposed, 2 registers per tap) FIR network
 *		used by the self-trigger cross-correlator.
 *
 * Description:	Every tap sees the same current sample.  The partial
 *		sum for tap i is formed from the accumulator coming out
 *		of tap i+1 and then passes through d0 and d1 before it
 *		becomes r[i], which tap i-1 picks up on the next clock.
 *		So history comes from the register chain, not from a
 *		sample delay line.  After the clock for sample u
 *
 *			r[0] = sum over k of coeff[k] * sample(u - 3k - 2)
 *
 *		i.e. tap k sees lag 3k+2: 2, 5, ... 95.
 *
 *		r[NumTaps] is the injection point and is always zero.
 *
 *------------------------------------------------------------------*/

// NumTaps is the fixed length of the correlation template.
const NumTaps = 32

type firNetwork struct {
	coeff Template

	r  [NumTaps + 1]int64
	d0 [NumTaps]int64
	d1 [NumTaps]int64
}

func newFirNetwork(coeff Template) firNetwork {
	return firNetwork{coeff: coeff} //nolint:exhaustruct
}

// out is the accumulator at the head of the network.
func (f *firNetwork) out() int64 {
	return f.r[0]
}

/*------------------------------------------------------------------
 *
 * Name:	clock
 *
 * Purpose:	Advance the network by one clock.
 *
 * Inputs:	sample	- Conditioned sample for this cycle.
 *
 * Description:	The next state is built entirely from a snapshot of the
 *		current registers, then replaces them.  Never update r,
 *		d0 or d1 in place; each tap must see the pre-clock values
 *		of its neighbour.
 *
 *		A zero coefficient has no multiplier in the hardware, the
 *		accumulator just passes through.
 *
 *------------------------------------------------------------------*/

func (f *firNetwork) clock(sample int) {
	var nr [NumTaps + 1]int64
	var nd0, nd1 [NumTaps]int64

	for i := range NumTaps {
		var accIn = f.r[i+1]

		var partial = accIn
		if f.coeff[i] != 0 {
			partial = int64(f.coeff[i])*int64(sample) + accIn
		}

		nd0[i] = partial
		nd1[i] = f.d0[i]
		nr[i] = f.d1[i]
	}

	nr[NumTaps] = 0

	f.r = nr
	f.d0 = nd0
	f.d1 = nd1
}

func (f *firNetwork) reset() {
	f.r = [NumTaps + 1]int64{}
	f.d0 = [NumTaps]int64{}
	f.d1 = [NumTaps]int64{}
}
