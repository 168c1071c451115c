// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli implements the Codevault command-line interface. Commands are
// declared as package-level cobra variables and wired together by
// NewRootCmd; setupDefaultServices loads configuration and opens the
// database before any command runs.
package cli
