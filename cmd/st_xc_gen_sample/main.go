/* Test waveform generator for st_xc_sim */
package main

import (
	stxc "github.com/doismellburning/stxc/src"
)

func main() {
	stxc.GenSampleMain()
}
