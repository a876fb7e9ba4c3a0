// Command server only serves HTTP; it is the container entrypoint. Use the
// souq CLI for migrations and seeding.
package main

import (
	"log"

	"github.com/shashiranjanraj/souq/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
