// Package main is the entry point for the rubrica CLI, a converter
// between the bookmark description formats used by PDF and DJVU tooling.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
