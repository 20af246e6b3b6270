// Package main provides the parkphotos CLI application.
// parkphotos runs the stages of the park photography analysis
// pipeline, from image acquisition to the statistical result tables.
package main

import (
	"github.com/digigeolab/parkphotos/cmd"
)

func main() {
	cmd.Execute()
}
