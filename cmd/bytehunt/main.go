/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for bytehunt. Builds the command tree and
maps search failures to process exit codes.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/bytehunt/cmd/bytehunt/commands"
)

func main() {
	rootCmd := commands.NewRootCommand(commands.NewApp())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
