package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"productsapi/internal/models"
	"productsapi/internal/schemas"
)

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DefaultSQLiteFile is the fallback database file name inside the data dir.
const DefaultSQLiteFile = "products.db"

// ErrUnsupportedURL is returned for connection strings no bundled driver can serve.
var ErrUnsupportedURL = errors.New("unsupported database URL")

// SeedProducts is inserted into an empty store on startup.
var SeedProducts = []models.Product{
	{Name: "Notebook", Price: schemas.RoundPrice(4.99), Quantity: 120},
	{Name: "Ballpoint Pen", Price: schemas.RoundPrice(1.49), Quantity: 500},
	{Name: "Desk Chair", Price: schemas.RoundPrice(89.99), Quantity: 35},
}

// Target is a resolved connection: which driver to use and its DSN.
type Target struct {
	Dialect string
	DSN     string
}

// Resolve maps a configured database URL to a Target. An empty URL selects a
// SQLite file in dataDir, creating the directory if needed.
func Resolve(url, dataDir string) (Target, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return Target{}, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
		}
		return Target{Dialect: DialectSQLite, DSN: filepath.Join(dataDir, DefaultSQLiteFile)}, nil
	case strings.HasPrefix(url, "sqlite:///"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(url, "sqlite:///")}, nil
	case strings.HasPrefix(url, "file:"):
		return Target{Dialect: DialectSQLite, DSN: url}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Target{Dialect: DialectPostgres, DSN: url}, nil
	case strings.HasPrefix(url, "postgresql+"):
		// SQLAlchemy style driver suffix, e.g. postgresql+psycopg2://
		if i := strings.Index(url, "://"); i > 0 {
			return Target{Dialect: DialectPostgres, DSN: "postgresql" + url[i:]}, nil
		}
	case strings.Contains(url, "host=") && !strings.Contains(url, "://"):
		return Target{Dialect: DialectPostgres, DSN: url}, nil
	}
	scheme := url
	if i := strings.Index(url, "://"); i > 0 {
		scheme = url[:i]
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, scheme)
}

// Open connects to target and configures the pool. GORM warnings, slow queries
// and SQL errors are written to log at warn level.
func Open(target Target, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch target.Dialect {
	case DialectPostgres:
		dialector = postgres.Open(target.DSN)
	case DialectSQLite:
		dialector = sqlite.Open(target.DSN)
	default:
		return nil, fmt.Errorf("%w: dialect %q", ErrUnsupportedURL, target.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", target.Dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if target.Dialect == DialectSQLite {
		// SQLite serialises writers; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		err = fmt.Errorf("failed to connect to database: %w", err)
		if closeErr := sqlDB.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database: %w", closeErr))
		}
		return nil, err
	}
	return db, nil
}

// gormWriter forwards GORM's logger output to zerolog. GORM only prints
// warnings, slow queries and errors at the configured level, so every line is
// logged as a warning.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Migrate creates or updates the products table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Seed inserts SeedProducts when the products table is empty and returns the
// number of rows inserted. A non-empty table is never touched.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		products := make([]models.Product, len(SeedProducts))
		copy(products, SeedProducts)
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		inserted = len(products)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return inserted, nil
}

// Init migrates the schema and, when seed is true, seeds an empty store.
func Init(ctx context.Context, db *gorm.DB, seed bool) (int, error) {
	if err := Migrate(db); err != nil {
		return 0, err
	}
	if !seed {
		return 0, nil
	}
	return Seed(ctx, db)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
