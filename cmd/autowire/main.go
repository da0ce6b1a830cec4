package main

import (
	"os"

	"github.com/km-arc/autowire/framework/app"
	"github.com/km-arc/autowire/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(app.Version).Execute(); err != nil {
		os.Exit(1)
	}
}
