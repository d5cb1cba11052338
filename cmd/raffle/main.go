package main

import (
	"os"

	"github.com/rustyeddy/raffle/cmd/raffle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
