package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cellsort/internal/organizer"
)

const (
	exitFailure = 1
	exitLocked  = 2

	// 128 + SIGINT
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, organizer.ErrLocked):
		fmt.Fprintln(os.Stderr, "cellsort:", err)
		return exitLocked
	default:
		fmt.Fprintln(os.Stderr, "cellsort:", err)
		return exitFailure
	}
}
