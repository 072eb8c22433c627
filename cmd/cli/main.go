// capreport renders capability match results as an indented, human-readable
// report of every matched rule and the evidence behind it.
package main

import (
	"os"

	"github.com/ccollicutt/capreport/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
