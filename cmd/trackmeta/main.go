package main

import (
	"os"

	"github.com/beatlab/trackmeta/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error(err, "command failed")
		os.Exit(1)
	}
}
