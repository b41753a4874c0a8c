// Package main starts the overlay process.
package main

import "flag"

// main is the entrypoint for the overlay process.
func main() {
	debug := flag.Bool("debug", false, "Enable verbose relay logging")
	flag.Parse()

	if err := run(*debug); err != nil {
		logFatal(err)
	}
}
