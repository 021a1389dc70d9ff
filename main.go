package main

import (
	"os"

	"taskboard/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
