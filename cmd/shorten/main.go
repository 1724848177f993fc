package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/IgorGreusunset/shortener-ui/internal/cli"
	"github.com/IgorGreusunset/shortener-ui/internal/client"
	"github.com/IgorGreusunset/shortener-ui/internal/clipboard"
	"github.com/IgorGreusunset/shortener-ui/internal/config"
	"github.com/IgorGreusunset/shortener-ui/internal/form"
	"github.com/IgorGreusunset/shortener-ui/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error during config parsing: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error during logger initialization: %v", err)
	}
	defer logger.Log.Sync()

	view := cli.NewView(os.Stdout)
	f := form.New(client.New(cfg.Endpoint, cfg.RequestTimeout, logger.Log), clipboard.NewSystem(),
		form.WithLogger(logger.Log),
		form.WithCopyResetAfter(cfg.CopyResetAfter),
		form.WithOnChange(view.Render),
	)
	defer f.Close()

	if err := cli.Run(context.Background(), f, os.Stdin, os.Stdout); err != nil {
		logger.Log.Sugar().Errorf("Error reading input: %v", err)
	}
}
