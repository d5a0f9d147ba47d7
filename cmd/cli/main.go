package main

import (
	"context"
	"log"
	"os"

	"github.com/mentorlink/client/internal/client/cli"
	"github.com/mentorlink/client/internal/client/config"
	"github.com/mentorlink/client/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
