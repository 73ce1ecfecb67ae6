package main

import (
	"os"
)

func main() {
	err := Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
