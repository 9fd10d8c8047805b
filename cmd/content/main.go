package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"episolve/cache"
	"episolve/cli"
	"episolve/cms"
	"episolve/common"
	"episolve/config"
	"episolve/content"
	"episolve/database"
	"episolve/models"
	"episolve/records"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	db, err := common.ConnectDb(cfg.DatabaseURI, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}
	defer common.CloseDb(db)

	if err := database.RunMigrations(db, log); err != nil {
		log.Error("running migrations", zap.Error(err))
		return 1
	}

	store, err := cms.NewStore(db, models.Collections())
	if err != nil {
		log.Error("building store", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Ops: records.New(store, content.NewGenerator(nil, cfg.Brand), log,
			records.WithOutput(os.Stdout),
			records.WithMedia(cfg.MediaDir, "/media"),
		),
		Cache: cache.New(cfg.CacheDir, cfg.CacheTTL),
		In:    os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
		Log:   log,
	}
	return cli.Run(ctx, app, os.Args[1:])
}
