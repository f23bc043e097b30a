// Command galaxypdf serves the Galaxy PDF merge and split page, and offers the
// same operations on the command line and as an MCP server.
//
// # Installation
//
//	go install github.com/lvillar/galaxypdf/cmd/galaxypdf@latest
//
// # Usage
//
//	galaxypdf serve --addr :8080
//	galaxypdf merge -o merged.pdf a.pdf b.pdf
//	galaxypdf split -o pages.zip --range "1-5, 8, 11-13" report.pdf
//	galaxypdf split -o pages.zip --per-page report.pdf
//	galaxypdf pages report.pdf
//	galaxypdf mcp
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
