package cmd

import (
	"fmt"

	"github.com/inkwellmag/inkwell/client"
)

const banner = `
  _____       _                    _ _
 |_   _|     | |                  | | |
   | |  _ __ | | ____      __ ___ | | |
   | | | '_ \| |/ /\ \ /\ / // _ \| | |
  _| |_| | | |   <  \ V  V /|  __/| | |
 |_____|_| |_|_|\_\  \_/\_/  \___||_|_|

`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  The Editorial Magazine - Version %s\x1b[0m\n\n", client.Version)
}
