package main

import (
	"execdash/cmd"
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "[cmd] ", log.LstdFlags)

	if err := cmd.Execute(); err != nil {
		logger.Fatalln(err.Error())
	}
}
