package main

import (
	"os"

	"github.com/abordage/schemas/cmd"
	"github.com/abordage/schemas/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
