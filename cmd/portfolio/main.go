package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/portfolio"
	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/kvstore"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe()
	case "seed":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: portfolio seed <file.yaml>")
			os.Exit(1)
		}
		err = runSeed(os.Args[2])
	case "export":
		err = runExport()
	case "version":
		fmt.Printf("portfolio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := portfolio.LoadConfig()
	if err != nil {
		return err
	}
	app := portfolio.New(cfg, portfolio.WithLogger(portfolio.NewLogger(cfg.LogLevel)))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	app.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func openStore() (*kvstore.SQLite, error) {
	cfg, err := portfolio.LoadConfig()
	if err != nil {
		return nil, err
	}
	return kvstore.OpenSQLite(cfg.DatabasePath, cfg.StorageQuotaBytes)
}

func runSeed(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	seed, err := content.ReadSeed(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, store.Close()) }()

	if err := seed.Apply(content.New(store)); err != nil {
		return err
	}
	fmt.Printf("Seeded content from %s\n", path)
	return nil
}

func runExport() (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, store.Close()) }()

	out, unknown, err := content.Export(content.New(store))
	if err != nil {
		return err
	}
	for _, key := range unknown {
		fmt.Fprintf(os.Stderr, "skipping unknown key %q\n", key)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printUsage() {
	fmt.Println(`portfolio - A single-owner portfolio site with an admin panel

Usage:
  portfolio [command] [arguments]

Commands:
  serve              Run the web server (default)
  seed <file.yaml>   Load content from a YAML file into the database
  export             Print all stored content as JSON
  version            Print the portfolio version
  help               Show this help message

Configuration is read from the environment (SITE_NAME, ADMIN_PASSWORD,
SESSION_SECRET, DATABASE_PATH, ...).`)
}
