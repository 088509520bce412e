package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("File .env not found, using system values")
	}

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
