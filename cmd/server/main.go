package main

import (
	"context"
	"log"
	"os"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/server"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
