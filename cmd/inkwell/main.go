package main

import "github.com/inkwellmag/inkwell/cmd/inkwell/cmd"

func main() {
	cmd.Execute()
}
