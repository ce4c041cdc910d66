package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type SeedConfig struct {
	Users []models.User `yaml:"users"`
	Items []models.Item `yaml:"items"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Users) == 0 && len(cfg.Items) == 0 {
		return fmt.Errorf("nothing to seed")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := 0
	for _, u := range cfg.Users {
		if u.Email == "" {
			continue
		}
		_, err = db.GetUserByEmail(ctx, u.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, database.ErrUserNotFound) {
			return fmt.Errorf("get %s: %w", u.Email, err)
		}
		if err = db.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("create %s: %w", u.Email, err)
		}
		users++
	}

	items := 0
	for _, it := range cfg.Items {
		if it.Name == "" {
			continue
		}
		if err = db.CreateItem(ctx, &it); err != nil {
			return fmt.Errorf("create %s: %w", it.Name, err)
		}
		items++
	}

	fmt.Printf("done: users=%d items=%d\n", users, items)
	return nil
}
