package main

import (
	"errors"
	"log"
	"os"

	"blobfetch/cmd"
	"blobfetch/config"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitRunError    = 1
	ExitInvalidArgs = 2
)

func main() {
	cnf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	os.Exit(exitCode(cmd.Execute(cnf)))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *cmd.Error
	if errors.As(err, &cmdErr) && cmdErr.Kind == cmd.KindParse {
		return ExitInvalidArgs
	}
	return ExitRunError
}
