// Package main provides the puzzler CLI.
package main

import "github.com/mesh-intelligence/puzzler/internal/cli"

func main() {
	cli.Execute()
}
