package main

import (
	"context"
	"log"

	"vaxremind/cmd"
)

func main() {
	if err := cmd.New().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
