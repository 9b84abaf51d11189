package stxc

/*------------------------------------------------------------------
 *
 * Purpose:	Turn accepted triggers into fixed length event frames.
 *
 * Description:	INACTIVE + trigger opens frame id+1 at index 0.
 *		While ACTIVE the index counts up to frameLen-1 and the
 *		frame then closes.  Triggers seen while ACTIVE are
 *		dropped, the frame in progress always runs to the end.
 *
 *		The pretrigger marker fires when the index equals
 *		pretrigger, so never if pretrigger >= frameLen.
 *
 *------------------------------------------------------------------*/

type frameMachine struct {
	frameLen   int
	pretrigger int

	active bool
	index  int
	id     int
}

type frameOutput struct {
	start   bool
	active  bool
	index   int
	id      int
	trigger bool
}

func newFrameMachine(frameLen, pretrigger int) frameMachine {
	return frameMachine{frameLen: frameLen, pretrigger: pretrigger} //nolint:exhaustruct
}

// clock applies the transition for this step's trigger and reports the
// resulting state.
func (m *frameMachine) clock(trigger bool) frameOutput {
	var out frameOutput

	if !m.active && trigger {
		m.active = true
		m.index = 0
		m.id++
		out.start = true
	} else if m.active {
		if m.index >= m.frameLen-1 {
			m.active = false
			m.index = 0
		} else {
			m.index++
		}
	}

	out.trigger = m.active && m.index == m.pretrigger
	out.active = m.active
	out.index = m.index
	out.id = m.id

	return out
}

func (m *frameMachine) reset() {
	m.active = false
	m.index = 0
	m.id = 0
}
