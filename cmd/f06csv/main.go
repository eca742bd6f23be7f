package main

import (
	"os"
)

func main() {
	if err := newCsvCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
