package main

import (
	"os"

	"github.com/oakwood-commons/dotree/cmd"
	"github.com/oakwood-commons/dotree/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		cmd.PrintError(err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
