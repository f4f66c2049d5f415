package main

import (
	"os"

	"github.com/soon-migrate/soon-migrate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
