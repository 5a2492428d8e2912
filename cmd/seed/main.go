package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/FolioForge/portfolio-backend/internal/auth"
	"github.com/FolioForge/portfolio-backend/internal/content"
	"github.com/FolioForge/portfolio-backend/internal/db"
	"github.com/FolioForge/portfolio-backend/internal/seeds"
	"github.com/FolioForge/portfolio-backend/internal/settings"
)

// CLI flags
var (
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate fixtures only; no DB writes")
	advisoryKey = flag.Int64("advisory-lock", 424311, "Postgres advisory lock key guarding concurrent seed runs. 0 = disabled")
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	fixtures, err := seeds.LoadFixtures()
	if err != nil {
		fatalf("fixtures error: %v", err)
	}
	fmt.Printf("Loaded fixtures: %d posts, %d projects, %d testimonials, %d pages, %d settings\n",
		len(fixtures.Posts), len(fixtures.Projects), len(fixtures.Testimonials),
		len(fixtures.Pages), len(fixtures.Settings))

	if *dryRun {
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Advisory lock through a plain SQL session so concurrent deploy jobs
	// can't double-seed. Held until this process exits.
	lockDB, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer lockDB.Close()

	if err := lockDB.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	if *advisoryKey != 0 {
		if _, err := lockDB.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	os.Setenv("DATABASE_URL", *dsn)
	gdb := db.Connect()

	auth.Init(gdb)
	content.Init(gdb)
	settings.Init(gdb)

	cfg := auth.LoadConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}

	if err := seeds.SeedAll(gdb, auth.NewHasher(cfg.BcryptCost)); err != nil {
		fatalf("seed: %v", err)
	}

	fmt.Println("Seeding complete.")
}
