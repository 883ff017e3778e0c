package main

import (
	"log"

	"github.com/MyelinBots/userrank-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error running userrank: %v", err)
	}
}
