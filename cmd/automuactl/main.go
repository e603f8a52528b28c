// Package main is the entry point for automuactl.
// It delegates immediately to the CLI command tree.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/automua/automua-run/internal/cli"
	"github.com/automua/automua-run/internal/logging"
)

func main() {
	err := cli.NewRootCmd().ExecuteContext(context.Background())
	if err == nil {
		return
	}

	code := 1
	var exitErr *cli.ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		code = exitErr.Code
		err = exitErr.Err
	}
	if err != nil {
		logging.Logger().Error("fatal error", "err", err)
	}
	os.Exit(code)
}
