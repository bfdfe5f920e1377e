package main

import (
	"log"

	"github.com/mvdti/dashboard-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
