package stxc

// delayLine is a fixed depth ring that hands back the sample seen
// `delay` steps earlier, zero until it has filled.
type delayLine struct {
	buf []int
	pos int
}

func newDelayLine(delay int) *delayLine {
	return &delayLine{buf: make([]int, max(0, delay)+1)} //nolint:exhaustruct
}

// shift stores v and returns the oldest retained sample.  With a delay
// of zero the ring has a single slot and v comes straight back.
func (d *delayLine) shift(v int) int {
	d.buf[d.pos] = v
	d.pos = (d.pos + 1) % len(d.buf)

	return d.buf[d.pos]
}

func (d *delayLine) reset() {
	clear(d.buf)
	d.pos = 0
}
