package migration

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/supportdesk/internal/shared/config"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

//go:embed scripts
var scriptsFS embed.FS

// goose keeps dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Migrate(db *gorm.DB) error
	GetName() string
}

// GooseStrategy applies the versioned SQL scripts embedded for one dialect.
type GooseStrategy struct {
	driver string
	// createDir is where Create writes new scripts on disk.
	createDir string
	logger    logger.Interface
}

// NewGooseStrategy returns a goose strategy for driver (sqlite or mysql).
// createDir is only used by Create.
func NewGooseStrategy(driver, createDir string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		driver:    driver,
		createDir: createDir,
		logger:    log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) dialect() (string, error) {
	switch s.driver {
	case config.DriverSQLite, "":
		return "sqlite3", nil
	case config.DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", s.driver)
	}
}

func (s *GooseStrategy) scriptsDir() string {
	driver := s.driver
	if driver == "" {
		driver = config.DriverSQLite
	}
	return path.Join("scripts", driver)
}

// withGoose configures goose for the embedded scripts and runs fn under the lock.
func (s *GooseStrategy) withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dialect, err := s.dialect()
	if err != nil {
		return err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(scriptsFS)
	goose.SetLogger(&gooseLogger{log: s.logger})
	return fn()
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting goose migration", "driver", s.driver, "scripts", s.scriptsDir())

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		currentVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			s.logger.Errorw("failed to get current version", "error", err)
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, s.scriptsDir()); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		finalVersion, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}

		s.logger.Infow("migration completed successfully",
			"from_version", currentVersion,
			"to_version", finalVersion)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, s.scriptsDir()); err != nil {
				s.logger.Errorw("down migration failed", "error", err)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully")
		return nil
	})
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var version int64
	err = s.withGoose(func() error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// Status prints applied and pending scripts through the goose logger.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return s.withGoose(func() error {
		if err := goose.Status(sqlDB, s.scriptsDir()); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

// Create writes a new timestamped SQL script into createDir/<driver>.
func (s *GooseStrategy) Create(name string) error {
	if s.createDir == "" {
		return fmt.Errorf("no scripts directory configured for create")
	}
	dir := filepath.Join(s.createDir, path.Base(s.scriptsDir()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	return s.withGoose(func() error {
		// New scripts go to the working tree, not the embedded copy.
		goose.SetBaseFS(nil)
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		s.logger.Infow("migration created successfully", "name", name, "dir", dir)
		return nil
	})
}

// Scripts lists the embedded script names for driver, in version order.
func Scripts(driver string) ([]string, error) {
	s := &GooseStrategy{driver: driver}
	entries, err := fs.ReadDir(scriptsFS, s.scriptsDir())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LatestVersion is the highest version among the embedded scripts for driver.
func LatestVersion(driver string) (int64, error) {
	names, err := Scripts(driver)
	if err != nil {
		return 0, err
	}
	var latest int64
	for _, name := range names {
		v, err := goose.NumericComponent(name)
		if err != nil {
			return 0, fmt.Errorf("bad migration name %q: %w", name, err)
		}
		latest = max(latest, v)
	}
	return latest, nil
}

type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorw(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
