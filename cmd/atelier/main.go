package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dan/atelier/internal/config"
	"github.com/dan/atelier/internal/db"
	"github.com/dan/atelier/internal/server"
	"github.com/dan/atelier/internal/session"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides ATELIER_ADDR)")
	dbPath := flag.String("db", "", "path to SQLite activity database (overrides DB_PATH)")
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("starting atelier, the tailoring admin dashboard")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// ── Activity database ───────────────────────────────────────────────
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// ── Session store ───────────────────────────────────────────────────
	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions, err = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
	} else {
		log.Println("no REDIS_ADDR configured, using in-memory sessions")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}
	defer func() {
		if c, ok := sessions.(io.Closer); ok {
			c.Close()
		}
	}()

	// ── HTTP Server ─────────────────────────────────────────────────────
	srv, err := server.New(cfg, database, sessions)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	// Start server in a goroutine so we can listen for shutdown signals.
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// ── Graceful Shutdown ───────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("received %s, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("shutdown complete")
}
