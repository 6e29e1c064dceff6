package main

import (
	"os"

	"github.com/cristianoliveira/chat-sidebar/cmd"
	"github.com/cristianoliveira/chat-sidebar/internal/errors"
)

func main() {
	err := cmd.Execute()
	if closeErr := client.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), err)
		os.Exit(1)
	}
}
