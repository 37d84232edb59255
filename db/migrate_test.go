package main

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
)

func TestParseArgs_Defaults(t *testing.T) {
	o, err := parseArgs(nil)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if o.direction != "up" {
		t.Fatalf("expected direction up, got %q", o.direction)
	}
	if o.steps != 0 {
		t.Fatalf("expected steps 0, got %d", o.steps)
	}
	if o.sourceURL != defaultSourceURL {
		t.Fatalf("expected default source, got %q", o.sourceURL)
	}
	if o.force != -1 {
		t.Fatalf("expected force -1, got %d", o.force)
	}
	if o.forceDirty || o.status {
		t.Fatalf("expected forceDirty and status false")
	}
}

func TestParseArgs_InvalidDirection(t *testing.T) {
	_, err := parseArgs([]string{"-direction", "sideways"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseArgs_SourceOverride(t *testing.T) {
	o, err := parseArgs([]string{"-source", "file:///tmp/migrations", "-force", "12"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if o.sourceURL != "file:///tmp/migrations" {
		t.Fatalf("expected source override, got %q", o.sourceURL)
	}
	if o.force != 12 {
		t.Fatalf("expected force 12, got %d", o.force)
	}
}

func envLookup(k string) string {
	if k == "DATABASE_URL" {
		return "postgres://example"
	}
	return ""
}

func TestRunMigrate_MissingDatabaseURL(t *testing.T) {
	_, err := runMigrate(nil, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  func(string) string { return "" },
		openDB: func(string, string) (*sql.DB, error) {
			t.Fatalf("openDB should not be called")
			return nil, nil
		},
		apply: func(*sql.DB, string, string, int) error {
			t.Fatalf("apply should not be called")
			return nil
		},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMigrate_NoChange(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	var gotSource, gotDir string
	var gotSteps int

	msg, err := runMigrate([]string{"-direction", "up"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply: func(_ *sql.DB, sourceURL, direction string, steps int) error {
			gotSource = sourceURL
			gotDir = direction
			gotSteps = steps
			return migrate.ErrNoChange
		},
	})
	if err != nil {
		t.Fatalf("runMigrate: %v", err)
	}
	if gotSource != defaultSourceURL || gotDir != "up" || gotSteps != 0 {
		t.Fatalf("expected apply called with default source up/0, got %q %q/%d", gotSource, gotDir, gotSteps)
	}
	if msg != "No migrations to apply" {
		t.Fatalf("expected no-change msg, got %q", msg)
	}
}

func TestRunMigrate_StepsDown(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	var gotDir string
	var gotSteps int

	msg, err := runMigrate([]string{"-direction", "down", "-steps", "2"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply: func(_ *sql.DB, _ string, direction string, steps int) error {
			gotDir = direction
			gotSteps = steps
			return nil
		},
	})
	if err != nil {
		t.Fatalf("runMigrate: %v", err)
	}
	if gotDir != "down" || gotSteps != 2 {
		t.Fatalf("expected apply called with down/2, got %q/%d", gotDir, gotSteps)
	}
	if msg != "Migration down completed successfully" {
		t.Fatalf("unexpected msg: %q", msg)
	}
}

func TestRunMigrate_OpenDBError(t *testing.T) {
	_, err := runMigrate([]string{"-direction", "up"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return nil, sql.ErrConnDone },
		apply: func(*sql.DB, string, string, int) error {
			t.Fatalf("apply should not be called")
			return nil
		},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMigrate_ApplyFnMissing(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	_, err = runMigrate([]string{"-direction", "up"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply:   nil,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMigrate_ApplyError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	_, err = runMigrate([]string{"-direction", "up"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply: func(*sql.DB, string, string, int) error {
			return sql.ErrTxDone
		},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

type fakeMigrator struct {
	upCalls    int
	downCalls  int
	stepsCalls []int
	forceCalls []int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeMigrator) Up() error                    { f.upCalls++; return nil }
func (f *fakeMigrator) Down() error                  { f.downCalls++; return nil }
func (f *fakeMigrator) Steps(n int) error            { f.stepsCalls = append(f.stepsCalls, n); return nil }
func (f *fakeMigrator) Force(v int) error            { f.forceCalls = append(f.forceCalls, v); return nil }
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.versionErr }

func stubMigratorFactories(t *testing.T, fm migrator) {
	t.Helper()
	prevWith := withPostgresInstance
	prevNewMigrate := newMigrateWithDB
	t.Cleanup(func() {
		withPostgresInstance = prevWith
		newMigrateWithDB = prevNewMigrate
	})
	withPostgresInstance = func(_ *sql.DB) (migratedb.Driver, error) { return nil, nil }
	newMigrateWithDB = func(string, string, migratedb.Driver) (migrator, error) { return fm, nil }
}

func TestApplyMigrations_UsesMigrator(t *testing.T) {
	fm := &fakeMigrator{}
	stubMigratorFactories(t, fm)

	if err := applyMigrations(nil, defaultSourceURL, "up", 0); err != nil {
		t.Fatalf("applyMigrations: %v", err)
	}
	if fm.upCalls != 1 {
		t.Fatalf("expected Up called once, got %d", fm.upCalls)
	}
}

func TestRunMigrate_ForceVersion(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	fm := &fakeMigrator{}
	stubMigratorFactories(t, fm)

	msg, err := runMigrate([]string{"-force", "12"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply: func(*sql.DB, string, string, int) error {
			t.Fatalf("apply should not be called when forcing")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("runMigrate: %v", err)
	}
	if msg != "Forced database to version 12" {
		t.Fatalf("unexpected msg: %q", msg)
	}
	if len(fm.forceCalls) != 1 || fm.forceCalls[0] != 12 {
		t.Fatalf("expected Force(12) called, got %#v", fm.forceCalls)
	}
}

func TestRunMigrate_Status(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	fm := &fakeMigrator{version: 4}
	stubMigratorFactories(t, fm)

	msg, err := runMigrate([]string{"-status"}, runtime{
		loadEnv: func(...string) error { return nil },
		getenv:  envLookup,
		openDB:  func(string, string) (*sql.DB, error) { return db, nil },
		apply: func(*sql.DB, string, string, int) error {
			t.Fatalf("apply should not be called for status")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("runMigrate: %v", err)
	}
	if msg != "Version 4" {
		t.Fatalf("unexpected msg: %q", msg)
	}
}

func TestAdminAction_StatusVariants(t *testing.T) {
	msg, err := adminAction(&fakeMigrator{version: 7, dirty: true}, cliOptions{status: true})
	if err != nil {
		t.Fatalf("adminAction: %v", err)
	}
	if msg != "Version 7 (dirty)" {
		t.Fatalf("unexpected msg: %q", msg)
	}

	msg, err = adminAction(&fakeMigrator{versionErr: migrate.ErrNilVersion}, cliOptions{status: true})
	if err != nil {
		t.Fatalf("adminAction: %v", err)
	}
	if msg != "No migrations applied yet" {
		t.Fatalf("unexpected msg: %q", msg)
	}
}

func TestAdminAction_ForceDirty(t *testing.T) {
	fm := &fakeMigrator{version: 3, dirty: true}
	msg, err := adminAction(fm, cliOptions{force: -1, forceDirty: true})
	if err != nil {
		t.Fatalf("adminAction: %v", err)
	}
	if msg != "Forced dirty database to version 3" {
		t.Fatalf("unexpected msg: %q", msg)
	}
	if len(fm.forceCalls) != 1 || fm.forceCalls[0] != 3 {
		t.Fatalf("expected Force(3) called, got %#v", fm.forceCalls)
	}

	clean := &fakeMigrator{version: 3}
	msg, err = adminAction(clean, cliOptions{force: -1, forceDirty: true})
	if err != nil {
		t.Fatalf("adminAction: %v", err)
	}
	if msg != "Database is not dirty (no force needed)" {
		t.Fatalf("unexpected msg: %q", msg)
	}
	if len(clean.forceCalls) != 0 {
		t.Fatalf("expected no Force call, got %#v", clean.forceCalls)
	}
}

func TestApplyDirection_InvalidDirection(t *testing.T) {
	fm := &fakeMigrator{}
	if err := applyDirection(fm, "sideways", 0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyDirection_DownAndSteps(t *testing.T) {
	fm := &fakeMigrator{}
	if err := applyDirection(fm, "down", 0); err != nil {
		t.Fatalf("down: %v", err)
	}
	if fm.downCalls != 1 {
		t.Fatalf("expected Down called, got %d", fm.downCalls)
	}

	fm2 := &fakeMigrator{}
	if err := applyDirection(fm2, "up", 2); err != nil {
		t.Fatalf("up steps: %v", err)
	}
	if len(fm2.stepsCalls) != 1 || fm2.stepsCalls[0] != 2 {
		t.Fatalf("expected Steps(2), got %#v", fm2.stepsCalls)
	}

	fm3 := &fakeMigrator{}
	if err := applyDirection(fm3, "down", 3); err != nil {
		t.Fatalf("down steps: %v", err)
	}
	if len(fm3.stepsCalls) != 1 || fm3.stepsCalls[0] != -3 {
		t.Fatalf("expected Steps(-3), got %#v", fm3.stepsCalls)
	}
}

func TestApplyMigrations_MigratorError(t *testing.T) {
	prevWith := withPostgresInstance
	defer func() { withPostgresInstance = prevWith }()

	withPostgresInstance = func(_ *sql.DB) (migratedb.Driver, error) { return nil, sql.ErrConnDone }
	if err := applyMigrations(nil, defaultSourceURL, "up", 0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewMigrator_FactoryErrorPaths(t *testing.T) {
	prevWith := withPostgresInstance
	prevNewMigrate := newMigrateWithDB
	defer func() {
		withPostgresInstance = prevWith
		newMigrateWithDB = prevNewMigrate
	}()

	withPostgresInstance = func(_ *sql.DB) (migratedb.Driver, error) { return nil, sql.ErrConnDone }
	if _, err := newMigrator(nil, defaultSourceURL); err == nil {
		t.Fatalf("expected error")
	}

	withPostgresInstance = func(_ *sql.DB) (migratedb.Driver, error) { return nil, nil }
	newMigrateWithDB = func(string, string, migratedb.Driver) (migrator, error) { return nil, sql.ErrConnDone }
	if _, err := newMigrator(nil, defaultSourceURL); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDefaultRuntime_NonNil(t *testing.T) {
	rt := defaultRuntime()
	if rt.getenv == nil || rt.openDB == nil || rt.apply == nil {
		t.Fatalf("expected default runtime to be populated: %#v", rt)
	}
}
