package main

import (
	"os"

	"github.com/osuc/buscaramos/cmd/buscaramos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
