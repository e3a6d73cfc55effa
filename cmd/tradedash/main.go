package main

import (
	"os"

	"github.com/rustyeddy/tradedash/cmd/tradedash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
