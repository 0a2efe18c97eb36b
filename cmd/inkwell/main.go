package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/inkwell"
	"github.com/eringen/inkwell/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkwell %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func loadConfig() (inkwell.SiteConfig, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	maxUpload, err := strconv.ParseInt(inkwell.EnvOr("MAX_UPLOAD_BYTES", "0"), 10, 64)
	if err != nil {
		return inkwell.SiteConfig{}, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
	}
	ttl, err := time.ParseDuration(inkwell.EnvOr("SUBMISSION_TTL", "0s"))
	if err != nil {
		return inkwell.SiteConfig{}, fmt.Errorf("SUBMISSION_TTL: %w", err)
	}
	return inkwell.SiteConfig{
		Name:          inkwell.EnvOr("SITE_NAME", "Inkwell"),
		URL:           inkwell.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   inkwell.EnvOr("SITE_DESCRIPTION", "A small blog with a friendly editor"),
		Addr:          inkwell.EnvOr("ADDR", ":3000"),
		DatabasePath:  inkwell.EnvOr("DATABASE_PATH", "data/inkwell.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		MaxUploadSize: maxUpload,
		SubmissionTTL: ttl,
		LogLevel:      inkwell.EnvOr("LOG_LEVEL", "info"),
		LogFormat:     inkwell.EnvOr("LOG_FORMAT", "json"),
	}, nil
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := inkwell.New(cfg, views.Default())
	defer app.Close()
	return app.Start()
}

// export writes the stored posts as a JSON array to stdout.
func export() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slots, err := inkwell.OpenSlotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer slots.Close()

	log := inkwell.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	posts, err := inkwell.NewPostRepository(slots, log).Uploaded(ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []inkwell.Post{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(posts)
}

func printUsage() {
	fmt.Println(`inkwell - a small blog with a rich-text editor

Usage:
  inkwell [command]

Commands:
  serve      Start the web server (default)
  export     Print stored posts as JSON
  version    Print the inkwell version
  help       Show this help message

Environment (also read from .env):
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, ADDR, DATABASE_PATH, DATABASE_URL,
  SESSION_SECRET, COOKIE_SECURE, MAX_UPLOAD_BYTES, SUBMISSION_TTL,
  LOG_LEVEL, LOG_FORMAT`)
}
