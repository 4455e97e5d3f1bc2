// PillBoard: draw, drag and split rounded pills on a board.
//
// Build:
//
//	go build -o pillboard ./cmd/pillboard
//
// Cross-compile with fyne-cross for packaged desktop builds:
//
//	fyne-cross windows -arch=amd64
//	fyne-cross darwin  -arch=amd64,arm64
package main

import (
	"os"

	"github.com/piwi3910/PillBoard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
