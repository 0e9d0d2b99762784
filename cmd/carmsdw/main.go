// Package main is the entry point for the carmsdw warehouse CLI.
package main

import "github.com/carmsdata/carmsdw/internal/cli"

func main() {
	cli.Execute()
}
