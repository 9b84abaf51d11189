/* Self-trigger cross-correlator reference model */
package main

import (
	stxc "github.com/doismellburning/stxc/src"
)

func main() {
	stxc.StXcSimMain()
}
