package main

import (
	"os"

	"github.com/crsmith/qa-thoughts/internal/cli"
)

func main() {
	if err := cli.NewThoughtCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
