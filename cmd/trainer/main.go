package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophbot/internal/flagx"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server"
	"github.com/dmitrijs2005/gophbot/internal/server/config"
	"github.com/dmitrijs2005/gophbot/internal/trainer"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]

	cfg, err := config.LoadConfig(args)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// -i forces input prompts when stdin is not a terminal
	var forcePrompts bool
	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&forcePrompts, "i", false, "print input prompts")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-i"})); err != nil || fs.NArg() > 0 {
		log.Fatalf("flags: -i takes no value, use -i=false to disable it")
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	s, err := server.OpenServices(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer s.Manager.Close()

	t := trainer.New(s.Chat, os.Stdin, os.Stdout, forcePrompts || trainer.IsInteractive(os.Stdin), logger)
	if err := t.Run(ctx); err != nil {
		logger.Error(ctx, "trainer stopped", "error", err)
	}

}
