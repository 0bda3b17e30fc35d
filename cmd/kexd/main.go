package main

import (
	"os"

	"kexd/cmd/kexd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
