// Package main is the entry point for prox2vmx.
package main

import (
	"fmt"
	"os"

	"github.com/pvetools/prox2vmx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
