package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/classbook/apps/api/echo"
	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/school"
	"github.com/trezcool/classbook/fixtures"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	storeLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening %s storage: %v", conf.Storage.Driver, err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			storeLogger.Error("Failed to close", err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	sch, err := school.Load(ctx, fixtures.Open(conf.FixturesDir), store, logger)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:   conf,
			Logger: logger,
			School: sch,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
