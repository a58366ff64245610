package main

import (
	"github.com/nfctrack/attendctl/internal/cli"
)

func main() {
	cli.Execute()
}
