package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/IgorGreusunset/shortener-ui/internal/config"
)

func parseFlags() *config.Config {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Error during config parsing: %v", err)
	}
	return cfg
}
