package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/items-api/backend/internal/config"
	"github.com/zhouzirui/items-api/backend/internal/handler"
	"github.com/zhouzirui/items-api/backend/internal/model/item"
	"github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/internal/service/items"
	"github.com/zhouzirui/items-api/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	backend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to open item storage: %v", err)
	}

	hub := events.NewHub(cfg.Events.Buffer)
	itemService := items.NewService(backend, hub)

	router := handler.NewRouter(itemService, hub)

	startServer(ctx, cfg.Server, router)
}

func openBackend(ctx context.Context, storeCfg config.StoreConfig) (storage.Backend, error) {
	var seed []item.Item
	if storeCfg.SeedFile != "" {
		loaded, err := storage.LoadSeed(storeCfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
		log.Printf("loaded %d seed items from %s", len(seed), storeCfg.SeedFile)
	}

	if storeCfg.Backend == config.BackendMemory {
		log.Println("using in-memory item storage")
		return storage.NewMemoryBackend(seed), nil
	}

	fileBackend := storage.NewFileBackend(storeCfg.Path)
	if storeCfg.CreateFile {
		created, err := fileBackend.Init(ctx, seed)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("created item database %s", fileBackend.Path())
		} else if len(seed) > 0 {
			log.Printf("item database %s already exists, seed items ignored", fileBackend.Path())
		}
	}
	log.Printf("using item database %s", fileBackend.Path())
	return fileBackend, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		// Long-lived change feed requests end with the process context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log.Printf("items API listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
