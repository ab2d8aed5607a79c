package main

import (
	"fmt"
	"os"

	"github.com/opsboard/taskboard/pkg/cli"
)

func main() {
	if err := cli.Command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
