// wirecut simulates a wire cut through a row of plates from the command line.
//
// Build:
//
//	go build -o wirecut ./cmd/wirecut
package main

import "github.com/piwi3910/WireCut/internal/cli"

func main() {
	cli.Execute()
}
