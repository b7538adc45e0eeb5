package main

import (
	"os"

	"github.com/BIBIYES/VideoTranslate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
