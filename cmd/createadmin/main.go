package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/repository/mongodb"
	authsvc "github.com/mamadbah2/warehouse/internal/service/auth"
	"github.com/mamadbah2/warehouse/pkg/logger"
)

var errMissingCredentials = errors.New("username and password are required (flags or ADMIN_USERNAME / ADMIN_PASSWORD)")

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	envFile := fs.String("env", "", "optional .env file")
	username := fs.String("username", "", "admin username (ADMIN_USERNAME)")
	password := fs.String("password", "", "admin password (ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	log = log.Named("createadmin")
	defer func() { _ = log.Sync() }()

	// Environment values are read after the env file is loaded.
	if *username == "" {
		*username = os.Getenv("ADMIN_USERNAME")
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *username == "" || *password == "" {
		return errMissingCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	defer func() { _ = repo.Close(context.Background()) }()

	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	svc := authsvc.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	created, err := svc.ProvisionUser(ctx, *username, *password, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if !created {
		log.Info("admin already exists", zap.String("username", *username))
		return nil
	}
	log.Info("admin created", zap.String("username", *username))
	return nil
}
