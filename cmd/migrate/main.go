package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go-hrms/internal/config"
	"go-hrms/migrations"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	m, err := migrations.Open(cfg.Database.URL(), logger)
	if err != nil {
		logger.Fatal("open migrator failed", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		n, convErr := intArg(args)
		if convErr != nil {
			logger.Fatal("steps needs a number, e.g. steps -1", zap.Error(convErr))
		}
		err = m.Steps(n)
	case "force":
		v, convErr := intArg(args)
		if convErr != nil {
			logger.Fatal("force needs a version", zap.Error(convErr))
		}
		err = m.Force(v)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			logger.Fatal("read version failed", zap.Error(verr))
		}
		logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(args[1])
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up             apply all pending migrations
  down           roll back every migration
  steps <n>      apply n migrations, negative n rolls back
  force <v>      set the version without running migrations
  version        print the current version`)
}
