package main

import (
	"context"
	"log"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/cli"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
