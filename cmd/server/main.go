package main

import (
	"context"
	"log"

	"github.com/dsemenov/pressroom/internal/server"
	"github.com/dsemenov/pressroom/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
