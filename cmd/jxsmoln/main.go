package main

import (
	"os"

	_ "github.com/reoring/jxsmoln/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
