package main

import (
	"context"
	"os"

	"XRPVanity/internal/cli"
)

func main() {
	r := cli.NewRunner(os.Stdout, os.Stderr)
	os.Exit(r.Execute(context.Background(), os.Args[1:]))
}
