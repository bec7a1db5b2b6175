package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"log/slog"
	mathrand "math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/jingle-draw/cliparse"
	"github.com/danielhkuo/jingle-draw/db"
	"github.com/danielhkuo/jingle-draw/draw"
	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/router"
	"github.com/danielhkuo/jingle-draw/store"
	"github.com/danielhkuo/jingle-draw/suggest"
)

// newRand seeds a fast PRNG from the system entropy pool. One instance
// per consumer; rand.Rand is not goroutine-safe.
func newRand() *mathrand.Rand {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// Degrade to a time-free but still distinct seed per call
		binary.LittleEndian.PutUint64(seed[:], mathrand.Uint64())
	}
	return mathrand.New(mathrand.NewChaCha8(seed))
}

func main() {
	var err error

	// Local dev convenience; absence of a .env file is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (sqlite by default, postgres via -t)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", driver)

	// Wire the core: store, directory, engine, suggestion provider
	st := store.New(dbConn)
	dir := groups.NewDirectory(st, newRand())
	engine := draw.NewEngine(st, dir, newRand())
	ideas := suggest.NewClient(cfg.IdeasAPIURL, cfg.IdeasAPIKey)

	// Create router
	mux := router.NewRouter(st, cfg, dir, engine, ideas)

	// Create server; the frontend is served from another origin
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
