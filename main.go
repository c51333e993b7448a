// main is the entry point for the athome CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/athome/cmd"
	"github.com/huangsam/athome/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
