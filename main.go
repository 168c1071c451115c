// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Codevault.
//
// Usage:
//
//	go run . [flags]
//	./codevault [flags]
//
// This launches the Codevault CLI. See --help for options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tverren/codevault/internal/cli"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

// main is the entrypoint for the Codevault CLI.
func main() {
	if os.Getenv("CODEVAULT_SHOW_VERSION") == "1" {
		fmt.Fprintf(os.Stderr, "Codevault version: %s\n", version)
	}

	if err := cli.Execute(); err != nil {
		log.Printf("Codevault CLI error: %v", err)
		os.Exit(1)
	}
}
