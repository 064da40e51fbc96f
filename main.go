package main

import (
	"os"

	"forge/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
