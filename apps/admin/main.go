package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/fixtures"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage"
)

var logger core.Logger

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger = logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up storage
	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		out:           os.Stdout,
		tty:           term.IsTerminal(int(os.Stdout.Fd())),
		store:         store,
		fixtures:      fixtures.Open(conf.FixturesDir),
		logger:        logger,
		generateCount: conf.GenerateCount,
	}
	err = cli.run(os.Args)
	if cErr := closeStore(); cErr != nil {
		logger.Error("closing storage", cErr)
	}
	switch code := exitCode(err); code {
	case exitOK:
	case exitUsage:
		os.Exit(code)
	case exitLoad:
		logger.Error(fmt.Sprintf("cannot load school data: %s", err), err)
		os.Exit(code)
	default:
		logger.Error(fmt.Sprintf("error: %s", err), err)
		os.Exit(code)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
