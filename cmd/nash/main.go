// Command nash is the Nash scripting-language interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/robert-mccausland/nash/cmd/nash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
