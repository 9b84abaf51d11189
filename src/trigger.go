package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Rising edge detector with holdoff.
 *
 * Description:	Armed when holdoff is zero.  Fires on the first point
 *		where the processed correlation has been strictly above
 *		threshold at two consecutive points after being at or
 *		below it:
 *
 *			x0 > threshold && x1 > threshold && x2 <= threshold
 *
 *		After firing, the next `holdoff` evaluations only count
 *		the holdoff down and never fire.
 *
 *------------------------------------------------------------------*/

type triggerDetector struct {
	threshold  int64
	holdoffLen int
	ops        XCorrOps

	holdoff int
}

func newTriggerDetector(threshold int64, holdoff int, ops XCorrOps) triggerDetector {
	return triggerDetector{threshold: threshold, holdoffLen: holdoff, ops: ops} //nolint:exhaustruct
}

// evaluate takes the raw chain registers s1, s2, s3 (newest first).
func (t *triggerDetector) evaluate(s1, s2, s3 int64) bool {
	if t.holdoff > 0 {
		t.holdoff--
		return false
	}

	var x0 = t.ops.Apply(s1)
	var x1 = t.ops.Apply(s2)
	var x2 = t.ops.Apply(s3)

	if x0 > t.threshold && x1 > t.threshold && x2 <= t.threshold {
		t.holdoff = t.holdoffLen
		return true
	}

	return false
}

func (t *triggerDetector) reset() {
	t.holdoff = 0
}
