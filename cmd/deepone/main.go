package main

import (
	"os"

	"github.com/deeponelabs/deepone-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
