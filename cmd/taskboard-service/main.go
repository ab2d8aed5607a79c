package main

import (
	"os"

	"github.com/opsboard/taskboard/pkg/tasks"
)

func main() {
	if err := tasks.Command().Execute(); err != nil {
		os.Exit(1)
	}
}
