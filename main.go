package main

import (
	"os"

	"github.com/AnyUserName/palimg-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
