// Package main is the entry point for the pk3strip CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mbtools/pk3strip/cmd/pk3strip/commands"
	"github.com/mbtools/pk3strip/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		red := color.New(color.FgRed)
		red.Fprintf(os.Stderr, "Error: %v\n", err)

		code := errors.ExitUser
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, exitErr.Suggestion)
			}
		}
		os.Exit(code)
	}
}
