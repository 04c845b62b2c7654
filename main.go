// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the MicroMatch CLI.
package main

import (
	"micromatch/cli/cmd"
)

func main() {
	cmd.Execute()
}
