// Package main is the entry point for the macup CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The macup tool drives every package
// manager update on a developer workstation in one sequential pass.
package main

import "github.com/ajxudir/macup/cmd"

// main initializes and runs the macup CLI application.
//
// It delegates all flag parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
