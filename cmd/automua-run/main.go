// Package main is the entry point for the automua-run launcher. Every argument
// goes to the tool; nothing is parsed here.
package main

import (
	"context"
	"os"

	"github.com/automua/automua-run/internal/cli"
	"github.com/automua/automua-run/internal/logging"
)

func main() {
	code, err := cli.Launch(context.Background(), os.Args[1:])
	if err != nil {
		logging.Logger().Error("fatal error", "err", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}
