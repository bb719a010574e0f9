package main

import (
	"os"

	"github.com/akash518/notegenerator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
