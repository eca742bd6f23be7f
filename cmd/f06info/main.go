package main

import (
	"os"
)

func main() {
	if err := newInfoCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
