package main

import (
	"context"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/testforge-dev/testforge/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
