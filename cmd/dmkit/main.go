package main

import (
	"os"

	"github.com/digitalmarketplace-forge/dmkit/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
