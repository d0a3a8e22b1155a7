package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/workouttracker/internal"
	"github.com/2beens/workouttracker/internal/config"
	"github.com/2beens/workouttracker/internal/console"
	"github.com/2beens/workouttracker/internal/logging"
	"github.com/2beens/workouttracker/internal/notify"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	fmt.Println("starting ...")
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "workouttracker: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional dotenv file with secrets")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load env file %s: %s", *envFile, err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		return err
	}

	closeLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "workouttracker",
	})
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %s\n", err)
		}
	}()

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using store backend: [%s]", cfg.StoreBackend)

	redisPassword := os.Getenv("WORKOUTTRACKER_REDIS_PASS")
	if cfg.NeedsRedis() && redisPassword == "" {
		log.Warnln("redis password not set. use WORKOUTTRACKER_REDIS_PASS")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	params := internal.NewServerParams{
		Config:                  cfg,
		RedisPassword:           redisPassword,
		HoneycombTracingEnabled: honeycombEnabled,
	}

	var renderer *console.Renderer
	if cfg.ConsoleEnabled {
		renderer = console.NewRenderer(os.Stdout)
		params.Renderer = renderer
		params.Notifier = renderer
		if cfg.SoundEnabled {
			params.Player = &notify.BellPlayer{Out: os.Stdout}
		}
	} else {
		params.Notifier = notify.LogNotifier{}
	}

	server, err := internal.NewServer(ctx, params)
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gCtx)
	})

	if renderer != nil {
		g.Go(func() error {
			err := console.New(server.Tracker(), renderer, os.Stdin, os.Stdout).Run(gCtx)
			// leaving the console stops the service
			cancel()
			return err
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Warnln("shutting down ...")
		return server.GracefulShutdown()
	})

	if err := g.Wait(); err != nil {
		log.Errorf("workouttracker stopped: %s", err)
		return err
	}
	log.Infoln("bye")
	return nil
}
