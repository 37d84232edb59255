package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const defaultSourceURL = "file://db/migrations"

func main() {
	msg, err := runMigrate(os.Args[1:], defaultRuntime())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(msg)
}

// runtime bundles the process-level dependencies so tests can run the CLI
// without a real Postgres instance behind it.
type runtime struct {
	loadEnv func(...string) error
	getenv  func(string) string
	openDB  func(driverName, dataSourceName string) (*sql.DB, error)
	apply   func(db *sql.DB, sourceURL, direction string, steps int) error
}

func defaultRuntime() runtime {
	return runtime{
		loadEnv: godotenv.Load,
		getenv:  os.Getenv,
		openDB:  sql.Open,
		apply:   applyMigrations,
	}
}

type cliOptions struct {
	direction  string
	steps      int
	sourceURL  string
	force      int
	forceDirty bool
	status     bool
}

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Version() (version uint, dirty bool, err error)
}

// Overridden in tests so newMigrator never dials Postgres.
var withPostgresInstance = func(db *sql.DB) (migratedb.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{})
}

var newMigrateWithDB = func(sourceURL string, databaseName string, driver migratedb.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, databaseName, driver)
}

func newMigrator(db *sql.DB, sourceURL string) (migrator, error) {
	driver, err := withPostgresInstance(db)
	if err != nil {
		return nil, fmt.Errorf("Failed to create migration driver: %w", err)
	}
	m, err := newMigrateWithDB(sourceURL, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("Failed to create migrate instance: %w", err)
	}
	return m, nil
}

func parseArgs(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	var o cliOptions
	fs.StringVar(&o.direction, "direction", "up", "Migration direction: up or down")
	fs.IntVar(&o.steps, "steps", 0, "Number of migration steps (0 = all)")
	fs.StringVar(&o.sourceURL, "source", defaultSourceURL, "Migration source URL")
	fs.IntVar(&o.force, "force", -1, "Force set migration version (clears dirty state). Example: -force=12")
	fs.BoolVar(&o.forceDirty, "force-dirty", false, "If the database is dirty, force it to the current version and exit")
	fs.BoolVar(&o.status, "status", false, "Print the current migration version and exit")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	switch o.direction {
	case "up", "down":
		return o, nil
	default:
		return cliOptions{}, fmt.Errorf("Invalid direction: %s (must be 'up' or 'down')", o.direction)
	}
}

func runMigrate(args []string, rt runtime) (string, error) {
	o, err := parseArgs(args)
	if err != nil {
		return "", err
	}

	if rt.loadEnv != nil {
		_ = rt.loadEnv()
	}

	databaseURL := ""
	if rt.getenv != nil {
		databaseURL = rt.getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if rt.openDB == nil {
		return "", fmt.Errorf("openDB dependency is required")
	}
	db, err := rt.openDB("postgres", databaseURL)
	if err != nil {
		return "", fmt.Errorf("Failed to connect to database: %w", err)
	}
	defer db.Close()

	if o.status || o.force >= 0 || o.forceDirty {
		m, err := newMigrator(db, o.sourceURL)
		if err != nil {
			return "", err
		}
		return adminAction(m, o)
	}

	if rt.apply == nil {
		return "", fmt.Errorf("apply dependency is required")
	}
	err = rt.apply(db, o.sourceURL, o.direction, o.steps)
	if err != nil && err != migrate.ErrNoChange {
		return "", fmt.Errorf("Migration failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		return "No migrations to apply", nil
	}
	return fmt.Sprintf("Migration %s completed successfully", o.direction), nil
}

// adminAction handles the inspection and recovery flags that bypass the
// normal up/down flow: -status, -force-dirty, and -force.
func adminAction(m migrator, o cliOptions) (string, error) {
	if o.status {
		v, dirty, err := m.Version()
		if err == migrate.ErrNilVersion {
			return "No migrations applied yet", nil
		}
		if err != nil {
			return "", fmt.Errorf("Failed to read migration version: %w", err)
		}
		if dirty {
			return fmt.Sprintf("Version %d (dirty)", v), nil
		}
		return fmt.Sprintf("Version %d", v), nil
	}
	if o.forceDirty {
		v, dirty, err := m.Version()
		if err != nil {
			return "", fmt.Errorf("Failed to read migration version: %w", err)
		}
		if !dirty {
			return "Database is not dirty (no force needed)", nil
		}
		if err := m.Force(int(v)); err != nil {
			return "", fmt.Errorf("Failed to force dirty version %d: %w", v, err)
		}
		return fmt.Sprintf("Forced dirty database to version %d", v), nil
	}
	if err := m.Force(o.force); err != nil {
		return "", fmt.Errorf("Failed to force version %d: %w", o.force, err)
	}
	return fmt.Sprintf("Forced database to version %d", o.force), nil
}

func applyMigrations(db *sql.DB, sourceURL, direction string, steps int) error {
	m, err := newMigrator(db, sourceURL)
	if err != nil {
		return err
	}
	return applyDirection(m, direction, steps)
}

func applyDirection(m migrator, direction string, steps int) error {
	switch direction {
	case "up":
		if steps > 0 {
			return m.Steps(steps)
		}
		return m.Up()
	case "down":
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	default:
		return fmt.Errorf("Invalid direction: %s (must be 'up' or 'down')", direction)
	}
}
