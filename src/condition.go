package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Bring ADC values into the signed 14 bit range the
 *		correlator expects.
 *
 * Description:	Signed input is clamped to -8192 .. 8191.
 *
 *		Unsigned 14 bit input is clamped to 0 .. 16383 and then,
 *		unless centering is turned off, has 8192 subtracted.
 *
 *		A baseline (given, or the mean of the whole input) can
 *		then be taken off, with the result clamped to the signed
 *		range again.
 *
 *------------------------------------------------------------------*/

const (
	Signed14Min    = -8192
	Signed14Max    = 8191
	Unsigned14Max  = 16383
	Unsigned14Zero = 8192
)

func ClampSigned14(v int64) int {
	if v > Signed14Max {
		return Signed14Max
	}
	if v < Signed14Min {
		return Signed14Min
	}
	return int(v)
}

func ClampUnsigned14(v int64) int {
	if v > Unsigned14Max {
		return Unsigned14Max
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// Conditioner describes how raw ADC values are interpreted.
type Conditioner struct {
	Unsigned14 bool
	NoCenter   bool
}

// Condition maps one decoded value into the model's sample range,
// before any baseline subtraction.
func (c Conditioner) Condition(v int64) int {
	if !c.Unsigned14 {
		return ClampSigned14(v)
	}

	var sample = ClampUnsigned14(v)
	if !c.NoCenter {
		sample -= Unsigned14Zero
	}

	return sample
}

// ComputeBaseline is the integer mean of samples, truncated toward zero.
func ComputeBaseline(samples []int) int {
	if len(samples) == 0 {
		return 0
	}

	var sum int64
	for _, v := range samples {
		sum += int64(v)
	}

	return int(sum / int64(len(samples)))
}

// SubtractBaseline removes baseline from every sample in place.  A zero
// baseline leaves the samples untouched, unclamped.
func SubtractBaseline(samples []int, baseline int) {
	if baseline == 0 {
		return
	}

	for i, v := range samples {
		samples[i] = ClampSigned14(int64(v) - int64(baseline))
	}
}
