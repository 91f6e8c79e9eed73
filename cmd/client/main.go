package main

import (
	"context"
	"log"
	"os"

	"counter_backend/internal/client/api"
	"counter_backend/internal/client/cli"
	"counter_backend/internal/client/config"
	"counter_backend/internal/client/state"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	server := api.New(cfg.ServerURL)
	store := state.NewStore(cfg.StatePath)
	manager, err := state.NewManager(store, server)
	if err != nil {
		log.Fatalf("failed to load local state: %v", err)
	}

	app := cli.NewApp(manager, server, os.Stdin, os.Stdout)

	ctx := context.Background()
	// ダッシュボード読み込み時の同期（ログイン済みの場合のみ）
	if manager.LoggedIn() {
		if err := manager.SyncOnLoad(ctx); err != nil {
			log.Printf("Error loading counter: %v", err)
		}
	}

	app.Run(ctx)
}
