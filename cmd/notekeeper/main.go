package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/notekeeper/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
