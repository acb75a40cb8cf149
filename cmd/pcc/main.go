// Package main provides the pcc command-line tool.
//
// Usage:
//
//	pcc [flags] <command> [args]
//
// Commands:
//
//	analyze    - Correlation matrix and strongest pairs of a CSV file
//	html       - HTML report of a CSV file
//	scatter    - SVG scatter plot of two columns
//	similarity - Pearson and cosine similarity of two number lists
//
// CSV is read from the file argument, or from stdin when it is omitted or "-".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/pcc/cmd/pcc/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
